package main

import (
	"fmt"
	"strconv"

	"github.com/GianMarcoC/Taller-Notas-de-Estudiantes/client"
	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"
)

var notasCmd = &cobra.Command{
	Use:   "notas",
	Short: "Manage grades",
}

var notasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all grades (profesor/admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("notas"); err != nil {
			return err
		}

		notas, err := app.api.Notas.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(notas))
		return nil
	},
}

var notasMiasCmd = &cobra.Command{
	Use:   "mias",
	Short: "List my own grades (estudiante)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("mis-notas"); err != nil {
			return err
		}

		notas, err := app.api.Notas.Mine(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(notas))
		return nil
	},
}

var notasAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a grade (profesor/admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		estudianteID, _ := cmd.Flags().GetInt("estudiante")
		asignatura, _ := cmd.Flags().GetString("asignatura")
		calificacion, _ := cmd.Flags().GetFloat64("calificacion")
		periodo, _ := cmd.Flags().GetString("periodo")
		observaciones, _ := cmd.Flags().GetString("observaciones")

		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("notas"); err != nil {
			return err
		}

		nota, err := app.api.Notas.Create(cmd.Context(), client.NotaInput{
			EstudianteID:  estudianteID,
			Asignatura:    asignatura,
			Calificacion:  calificacion,
			Periodo:       periodo,
			Observaciones: observaciones,
		})
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(nota))
		return nil
	},
}

var notasRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a grade (profesor/admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid grade id %q", args[0])
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("notas"); err != nil {
			return err
		}

		if err := app.api.Notas.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted grade %d\n", id)
		return nil
	},
}

var estudiantesCmd = &cobra.Command{
	Use:   "estudiantes",
	Short: "Manage the student roster",
}

var estudiantesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the student roster (profesor/admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("estudiantes"); err != nil {
			return err
		}

		estudiantes, err := app.api.Estudiantes.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(estudiantes))
		return nil
	},
}

var usuariosCmd = &cobra.Command{
	Use:   "usuarios",
	Short: "Manage accounts (admin)",
}

var usuariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("usuarios"); err != nil {
			return err
		}

		usuarios, err := app.api.Usuarios.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(usuarios))
		return nil
	},
}

var auditoriaCmd = &cobra.Command{
	Use:   "auditoria",
	Short: "Read the audit log (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		if err := app.guardRoute("auditoria"); err != nil {
			return err
		}

		entries, err := app.api.Auditoria.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(print.MaybePrettyJSON(entries))
		return nil
	},
}

func init() {
	notasAddCmd.Flags().Int("estudiante", 0, "student id")
	notasAddCmd.Flags().String("asignatura", "", "subject name")
	notasAddCmd.Flags().Float64("calificacion", 0, "grade on a 0-5 scale")
	notasAddCmd.Flags().String("periodo", "", "academic period")
	notasAddCmd.Flags().String("observaciones", "", "optional remarks")

	notasCmd.AddCommand(notasListCmd, notasMiasCmd, notasAddCmd, notasRmCmd)
	estudiantesCmd.AddCommand(estudiantesListCmd)
	usuariosCmd.AddCommand(usuariosListCmd)

	rootCmd.AddCommand(notasCmd, estudiantesCmd, usuariosCmd, auditoriaCmd)
}
