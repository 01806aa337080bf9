package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the profile and all history",
	Long:  "Deletes the stored profile together with every archived result and the interview transcript. History cannot outlive the profile it was built for.",
	RunE:  runLogout,
}

var logoutYes bool

func init() {
	logoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(logoutCmd)
}

func runLogout(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.profiles.Load(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Println("No profile stored.")
		return nil
	}

	if !logoutYes {
		fmt.Printf("This deletes the profile for %s and the entire history. Continue? [y/N] ", p.Name)
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := a.profiles.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Profile and history deleted.")
	return nil
}
