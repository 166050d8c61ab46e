package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_3527180448",
			"name": "orders",
			"type": "base",
			"system": false,
			"fields": [
				{
					"autogeneratePattern": "[a-z0-9]{15}",
					"hidden": false,
					"id": "text3208210256",
					"max": 15,
					"min": 15,
					"name": "id",
					"pattern": "^[a-z0-9]+$",
					"presentable": false,
					"primaryKey": true,
					"required": true,
					"system": true,
					"type": "text"
				},
				{
					"cascadeDelete": false,
					"collectionId": "pbc_2602490748",
					"hidden": false,
					"id": "relation3143550352",
					"maxSelect": 1,
					"minSelect": 0,
					"name": "event",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "relation"
				},
				{
					"autogeneratePattern": "",
					"hidden": false,
					"id": "text3343273554",
					"max": 0,
					"min": 0,
					"name": "event_name",
					"pattern": "",
					"presentable": true,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "number2918785372",
					"max": null,
					"min": 0,
					"name": "event_price",
					"onlyInt": false,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "number"
				},
				{
					"exceptDomains": null,
					"hidden": false,
					"id": "url1716930793",
					"name": "event_image",
					"onlyDomains": null,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "url"
				},
				{
					"autogeneratePattern": "",
					"hidden": false,
					"id": "text1068292557",
					"max": 0,
					"min": 0,
					"name": "event_date",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"cascadeDelete": false,
					"collectionId": "_pb_users_auth_",
					"hidden": false,
					"id": "relation3724094482",
					"maxSelect": 1,
					"minSelect": 0,
					"name": "buyer",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "relation"
				},
				{
					"exceptDomains": null,
					"hidden": false,
					"id": "email2174573427",
					"name": "buyer_email",
					"onlyDomains": null,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "email"
				},
				{
					"cascadeDelete": false,
					"collectionId": "_pb_users_auth_",
					"hidden": false,
					"id": "relation3182418120",
					"maxSelect": 1,
					"minSelect": 0,
					"name": "organizer",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "relation"
				},
				{
					"exceptDomains": null,
					"hidden": false,
					"id": "email3885137012",
					"name": "organizer_email",
					"onlyDomains": null,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "email"
				},
				{
					"hidden": false,
					"id": "select2744374011",
					"maxSelect": 1,
					"name": "status",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "select",
					"values": [
						"Pending",
						"Accepted",
						"Rejected"
					]
				},
				{
					"autogeneratePattern": "",
					"hidden": false,
					"id": "text1579384326",
					"max": 0,
					"min": 0,
					"name": "name",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"exceptDomains": null,
					"hidden": false,
					"id": "email3885137013",
					"name": "email",
					"onlyDomains": null,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "email"
				},
				{
					"autogeneratePattern": "",
					"hidden": false,
					"id": "text2134206236",
					"max": 0,
					"min": 0,
					"name": "payment_method",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "file2941922336",
					"maxSelect": 1,
					"maxSize": 1048576,
					"mimeTypes": [
						"image/png"
					],
					"name": "qr_code",
					"presentable": false,
					"protected": false,
					"required": false,
					"system": false,
					"thumbs": null,
					"type": "file"
				},
				{
					"hidden": false,
					"id": "autodate2990389176",
					"name": "created",
					"onCreate": true,
					"onUpdate": false,
					"presentable": false,
					"system": false,
					"type": "autodate"
				},
				{
					"hidden": false,
					"id": "autodate3332085495",
					"name": "updated",
					"onCreate": true,
					"onUpdate": true,
					"presentable": false,
					"system": false,
					"type": "autodate"
				}
			],
			"indexes": [
				"CREATE INDEX ` + "`" + `idx_orders_buyer` + "`" + ` ON ` + "`" + `orders` + "`" + ` (` + "`" + `buyer` + "`" + `)",
				"CREATE INDEX ` + "`" + `idx_orders_organizer` + "`" + ` ON ` + "`" + `orders` + "`" + ` (` + "`" + `organizer` + "`" + `)"
			],
			"listRule": "buyer = @request.auth.id || organizer = @request.auth.id",
			"viewRule": "buyer = @request.auth.id || organizer = @request.auth.id",
			"createRule": "@request.auth.id != \"\"",
			"updateRule": "organizer = @request.auth.id",
			"deleteRule": "buyer = @request.auth.id || organizer = @request.auth.id"
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_3527180448")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
