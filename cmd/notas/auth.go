package main

import (
	"fmt"

	auth "github.com/GianMarcoC/Taller-Notas-de-Estudiantes"
	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		app, err := buildApp()
		if err != nil {
			return err
		}

		session, err := app.service.Login(cmd.Context(), email, password)
		if err != nil {
			if auth.IsAuthRejected(err) {
				return fmt.Errorf("login rejected: check your credentials")
			}
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", session.User.Email, session.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		app.service.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		nombre, _ := cmd.Flags().GetString("nombre")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("rol")

		app, err := buildApp()
		if err != nil {
			return err
		}

		payload := auth.RegisterPayload{
			Nombre:   nombre,
			Email:    email,
			Password: password,
			Role:     auth.Role(role),
		}

		if err := app.service.Register(cmd.Context(), payload); err != nil {
			return err
		}

		fmt.Printf("Registered %s, you can now login\n", email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		user := app.service.CurrentUser()
		if user == nil || !app.service.IsAuthenticated() {
			fmt.Println("Not logged in")
			return nil
		}

		fmt.Println(print.MaybePrettyJSON(user))
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rotate the bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}

		if _, err := app.service.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		fmt.Println("Token refreshed")
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("nombre", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("rol", string(auth.RoleEstudiante), "role: estudiante, profesor, or admin")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, refreshCmd)
}
