package cmd

import (
	"time"

	"timebank/lib/constants"
	"timebank/lib/data"

	"github.com/spf13/cobra"
)

func newSeveraCmd(factory RepositoryFactory) *cobra.Command {
	severaCmd := &cobra.Command{
		Use:   "severa",
		Short: "Query Severa through the timebank adapter",
	}
	severaCmd.AddCommand(
		newFlextimeCmd(factory),
		newAllocationsCmd(factory),
		newPhasesCmd(factory),
		newWorkHoursCmd(factory),
	)
	return severaCmd
}

func newFlextimeCmd(factory RepositoryFactory) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "flextime <severaUserGuid>",
		Short: "Show the flextime balance of a user (defaults to yesterday)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := time.Parse(constants.DATE_LAYOUT, date); err != nil {
					return err
				}
			}
			repository, err := factory()
			if err != nil {
				return err
			}
			flextime, err := repository.GetFlextimeByUser(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), flextime)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "event date in YYYY-MM-DD format")
	return cmd
}

func newAllocationsCmd(factory RepositoryFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "allocations <severaUserGuid>",
		Short: "List the resource allocations of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, err := factory()
			if err != nil {
				return err
			}
			allocations, err := repository.GetResourceAllocation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), allocations)
		},
	}
}

func newPhasesCmd(factory RepositoryFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "phases <severaProjectGuid>",
		Short: "List the phases of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, err := factory()
			if err != nil {
				return err
			}
			phases, err := repository.GetPhasesByProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), phases)
		},
	}
}

func newWorkHoursCmd(factory RepositoryFactory) *cobra.Command {
	var selector data.WorkHoursSelector
	cmd := &cobra.Command{
		Use:   "workhours",
		Short: "List work hours, optionally for one user or one project",
		Long:  "List work hours. When both --user and --project are given only the user filter applies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repository, err := factory()
			if err != nil {
				return err
			}
			workHours, err := repository.GetWorkHours(cmd.Context(), selector)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), workHours)
		},
	}
	cmd.Flags().StringVar(&selector.SeveraUserGuid, "user", "", "Severa user GUID")
	cmd.Flags().StringVar(&selector.SeveraProjectGuid, "project", "", "Severa project GUID")
	return cmd
}
