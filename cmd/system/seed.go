package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/hms_backend/internal/app"
	"github.com/Alijeyrad/hms_backend/internal/service/auth"
)

// NewSeedAdminCommand creates an admin account. Registration through the API
// always produces regular users.
func NewSeedAdminCommand() *cobra.Command {
	var req auth.RegisterRequest

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			var authSvc auth.Service
			fxApp := fx.New(
				fx.Supply(cfg),
				app.InfraModule,
				app.RepoModule,
				app.ServiceModule,
				fx.Populate(&authSvc),
				fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
			)
			if err := fxApp.Err(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := fxApp.Start(ctx); err != nil {
				return err
			}
			defer fxApp.Stop(context.Background())

			u, err := authSvc.CreateAdmin(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Printf("Admin %s created with id %s\n", u.Email, u.ID.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&req.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "admin phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
