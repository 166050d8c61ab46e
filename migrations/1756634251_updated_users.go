package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("_pb_users_auth_")
		if err != nil {
			return err
		}

		collection.Fields.Add(&core.SelectField{
			Name:      "role",
			MaxSelect: 1,
			Values:    []string{"buyer", "seller"},
		})
		collection.Fields.Add(&core.TextField{
			Name: "organization_name",
		})
		collection.Fields.Add(&core.TextField{
			Name: "organization_description",
		})

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("_pb_users_auth_")
		if err != nil {
			return err
		}

		collection.Fields.RemoveByName("role")
		collection.Fields.RemoveByName("organization_name")
		collection.Fields.RemoveByName("organization_description")

		return app.Save(collection)
	})
}
