package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ylwblog/internal/domain/site"
	"ylwblog/internal/index"
)

var (
	listPage  int
	listSize  int
	listYear  int
	listYears bool
)

var listCmd = &cobra.Command{
	Use:   "list [link]",
	Short: "Print the posts recorded by the last build, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listSize, "size", 20, "Posts per page")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Only posts from this year")
	listCmd.Flags().BoolVar(&listYears, "years", false, "Print post counts per year instead")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		link := args[0]
		if l := site.Classify(link).Link(); l != "" {
			link = l
		}
		p, err := st.Get(link)
		if errors.Is(err, index.ErrNotFound) {
			return fmt.Errorf("no post at %s", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "url:         %s\ntitle:       %s\ndate:        %s (%s)\ndescription: %s\n",
			p.Link, p.Title, p.Date.Long, p.Date.Ordinal, p.Description)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if listYears {
		years, err := st.Years()
		if err != nil {
			return err
		}
		for _, y := range years {
			fmt.Fprintf(tw, "%d\t%d\n", y.Year, y.Count)
		}
		return nil
	}

	total, err := st.Count()
	if err != nil {
		return err
	}
	builtAt, err := st.BuiltAt()
	if err != nil {
		return err
	}
	if builtAt.IsZero() {
		fmt.Fprintln(out, "index is empty, run `ylwblog build` first")
		return nil
	}
	fmt.Fprintf(out, "%d posts, built %s\n\n", total, builtAt.Local().Format("2006-01-02 15:04:05"))

	posts, err := st.List(index.ListOptions{Page: listPage, Size: listSize, Year: listYear})
	if err != nil {
		return err
	}
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Date.Long, p.Link, p.Title)
	}
	return nil
}
