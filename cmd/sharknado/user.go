package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharknado-db/sharknado/pkg/types"
	"github.com/sharknado-db/sharknado/pkg/users"
)

// User administration operates directly on users.json in the data
// directory; a running server picks the changes up through its file
// watch. The TCP protocol itself exposes no user-management verbs.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username> <password>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		directory, err := openDirectory()
		if err != nil {
			return err
		}
		if err := directory.Create(args[0], args[1], types.Role(role)); err != nil {
			return err
		}

		fmt.Printf("User %s created with role %s\n", args[0], role)
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <username> <field> <value>",
	Short: "Update a user's password or role",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, err := openDirectory()
		if err != nil {
			return err
		}
		if err := directory.Update(args[0], args[1], args[2]); err != nil {
			return err
		}

		fmt.Printf("User %s updated\n", args[0])
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, err := openDirectory()
		if err != nil {
			return err
		}
		if err := directory.Delete(args[0]); err != nil {
			return err
		}

		fmt.Printf("User %s deleted\n", args[0])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		directory, err := openDirectory()
		if err != nil {
			return err
		}

		list := directory.List()
		if len(list) == 0 {
			fmt.Println("No users registered")
			return nil
		}
		for _, u := range list {
			fmt.Printf("%s\t%s\n", u.Username, u.Role)
		}
		return nil
	},
}

func openDirectory() (*users.Directory, error) {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	return users.Open(dataDir, nil)
}

func init() {
	userCreateCmd.Flags().String("role", string(types.RoleUser), "Role for the new user (admin or user)")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userListCmd)
}
