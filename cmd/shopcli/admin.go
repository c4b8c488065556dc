package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/go-storefront/storefront/storage/model"
)

var newAdmin model.AddUser

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Creates an administrator account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		admin := newAdmin
		admin.Role = model.RoleAdmin
		u, err := backends.Users.Create(cmd.Context(), admin)
		if err != nil {
			return err
		}
		log.Printf("Created administrator %s (%s)", u.Email, u.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&newAdmin.Name, "name", "Admin", "the name of the administrator")
	createAdminCmd.Flags().StringVar(&newAdmin.Email, "email", "", "the email used to log in")
	createAdminCmd.Flags().StringVar(&newAdmin.Password, "password", "", "the password used to log in")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
