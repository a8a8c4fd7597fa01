package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/directory"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	var (
		withEmail bool
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Print the directory profile of a user as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithRequestId(cmd.Context(), uuid.New().String())
			client, err := ldap.InitLdap(opts.appConfig.LDAP)
			if err != nil {
				return err
			}

			profiles := directory.NewProfileService(client, opts.appConfig.LDAP.BaseDN)
			if withEmail {
				profiles = profiles.WithEmail()
			}

			var profile *structs.UserProfile
			if strict {
				profile, err = profiles.LookupProfile(ctx, args[0])
				if err != nil {
					return err
				}
			} else {
				profile = profiles.FetchProfile(ctx, args[0])
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		},
	}

	cmd.Flags().BoolVar(&withEmail, "email", false, "Also fetch the mail attribute")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the user is missing or the directory is unreachable")
	return cmd
}

func newEnabledCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "enabled <username>",
		Short: "Print whether a user account exists and is enabled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithRequestId(cmd.Context(), uuid.New().String())
			client, err := ldap.InitLdap(opts.appConfig.LDAP)
			if err != nil {
				return err
			}

			accounts := directory.NewAccountService(client, opts.appConfig.LDAP.BaseDN)
			if !strict {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), accounts.IsEnabled(ctx, args[0]))
				return err
			}

			status, err := accounts.CheckAccount(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status.Enabled)
			return err
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the account state cannot be determined")
	return cmd
}
