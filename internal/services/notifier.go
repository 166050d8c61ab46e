package services

import (
	pubnub "github.com/pubnub/go"
)

// PubNubNotifier publishes realtime notices to per-user channels.
// Delivery is best-effort; a dropped notice never fails the operation
// that triggered it.
type PubNubNotifier struct {
	pn *pubnub.PubNub
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{pn: pn}
}

func (n *PubNubNotifier) Publish(channel string, message map[string]any) {
	n.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
}
