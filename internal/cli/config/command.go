package config

import (
	"github.com/spf13/cobra"

	configdomain "dogctl/config"
	"dogctl/internal/cli/common"
	"dogctl/resource"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Manage connection profiles",
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
		Args: cobra.NoArgs,
	}

	command.AddCommand(
		newInitCommand(deps, globalFlags),
		newSetProfileCommand(deps, globalFlags),
		newUseProfileCommand(deps, globalFlags),
		newListProfilesCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
	)
	return command
}

func newInitCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var name string
	var apiKey string
	var appKey string
	var site string

	command := &cobra.Command{
		Use:     "init",
		Short:   "Create a first profile and make it active",
		Example: "  dogctl config init --name default --api-key ... --app-key ... --site us",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			profiles, err := common.RequireProfiles(deps)
			if err != nil {
				return err
			}

			if name == "" {
				name = "default"
			}
			if apiKey == "" || appKey == "" {
				return common.ValidationError("flags --api-key and --app-key are required", nil)
			}

			profile := configdomain.Profile{Name: name, APIKey: apiKey, AppKey: appKey, Site: site}
			if err := profiles.Upsert(profile); err != nil {
				return err
			}
			if err := profiles.SetActive(name); err != nil {
				return err
			}
			return common.WriteText(command, "profile "+name+" created and set active")
		},
	}

	command.Flags().StringVar(&name, "name", "default", "profile name")
	command.Flags().StringVar(&apiKey, "api-key", "", "Datadog API key")
	command.Flags().StringVar(&appKey, "app-key", "", "Datadog application key")
	command.Flags().StringVar(&site, "site", "", "Datadog site or region shortcut (us, eu, us3, us5, ap1, gov)")
	return command
}

func newSetProfileCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var apiKey string
	var appKey string
	var site string

	command := &cobra.Command{
		Use:     "set-profile <name>",
		Short:   "Create or update a profile",
		Example: "  dogctl config set-profile staging --api-key ... --app-key ... --site eu",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			profiles, err := common.RequireProfiles(deps)
			if err != nil {
				return err
			}

			profile := configdomain.Profile{Name: args[0], APIKey: apiKey, AppKey: appKey, Site: site}
			if existing, err := profiles.Get(args[0]); err == nil {
				if profile.APIKey == "" {
					profile.APIKey = existing.APIKey
				}
				if profile.AppKey == "" {
					profile.AppKey = existing.AppKey
				}
				if profile.Site == "" {
					profile.Site = existing.Site
				}
			}
			if profile.APIKey == "" || profile.AppKey == "" {
				return common.ValidationError("flags --api-key and --app-key are required for a new profile", nil)
			}

			if err := profiles.Upsert(profile); err != nil {
				return err
			}
			return common.WriteText(command, "profile "+args[0]+" saved")
		},
	}

	command.Flags().StringVar(&apiKey, "api-key", "", "Datadog API key")
	command.Flags().StringVar(&appKey, "app-key", "", "Datadog application key")
	command.Flags().StringVar(&site, "site", "", "Datadog site or region shortcut")
	return command
}

func newUseProfileCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "use-profile <name>",
		Short:   "Switch the active profile",
		Example: "  dogctl config use-profile staging",
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			profiles, err := common.RequireProfiles(deps)
			if err != nil {
				return err
			}
			if err := profiles.SetActive(args[0]); err != nil {
				return err
			}
			return common.WriteText(command, "active profile is now "+args[0])
		},
	}
}

var profileColumns = []common.Column{
	{Header: "name", Value: func(doc resource.Document) string { return common.FieldString(doc, "name") }},
	{Header: "site", Value: func(doc resource.Document) string { return common.FieldString(doc, "site") }},
	{Header: "api-key", Value: func(doc resource.Document) string { return common.FieldString(doc, "api-key") }},
	{Header: "active", Value: func(doc resource.Document) string { return common.FieldString(doc, "active") }},
}

func newListProfilesCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list-profiles",
		Short:   "List configured profiles",
		Example: "  dogctl config list-profiles",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			profiles, err := common.RequireProfiles(deps)
			if err != nil {
				return err
			}

			catalog, err := profiles.List()
			if err != nil {
				return err
			}
			active, err := profiles.ActiveName()
			if err != nil {
				return err
			}

			docs := make([]resource.Document, 0, len(catalog))
			for _, profile := range catalog {
				docs = append(docs, resource.Document{
					"name":    profile.Name,
					"site":    profile.Site,
					"api-key": configdomain.MaskKey(profile.APIKey),
					"active":  profile.Name == active,
				})
			}
			return common.WriteDocuments(command, globalFlags, docs, profileColumns)
		},
	}
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "get",
		Short:   "Show the resolved credentials for the selected profile",
		Example: "  dogctl config get\n  dogctl config get -p staging",
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			profiles, err := common.RequireProfiles(deps)
			if err != nil {
				return err
			}

			selection := configdomain.ProfileSelection{}
			if globalFlags != nil {
				selection.Name = globalFlags.Profile
			}
			credentials, err := profiles.Resolve(selection)
			if err != nil {
				return err
			}

			return common.WriteDocument(command, globalFlags, resource.Document{
				"site":    credentials.Site,
				"api-key": configdomain.MaskKey(credentials.APIKey),
				"app-key": configdomain.MaskKey(credentials.AppKey),
			})
		},
	}
}
