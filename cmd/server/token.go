package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/medsync/internal/server/handlers"
)

// newTokenCmd выпускает токен для разработки и интеграционных проверок.
// В эксплуатации токены выдает внешний сервис идентификации тем же секретом.
func newTokenCmd(a *app) *cobra.Command {
	var (
		tenantID    string
		userID      string
		entityTypes []string
		ttl         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token (development only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tenantID == "" || userID == "" {
				return fmt.Errorf("--tenant and --user are required")
			}

			token, _, err := handlers.GenerateAccessToken(handlers.JWTConfig{
				Secret:         []byte(a.cfg.JWT.Secret),
				Issuer:         a.cfg.JWT.Issuer,
				AccessTokenTTL: ttl,
			}, handlers.Identity{
				TenantID:    tenantID,
				UserID:      userID,
				EntityTypes: entityTypes,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringSliceVar(&entityTypes, "entity-types", nil, "authorized entity types (all when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
