package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/portfolio-website/portfolio-server/config"
	"github.com/portfolio-website/portfolio-server/internal/assets"
	"github.com/portfolio-website/portfolio-server/internal/bootstrap"
	"github.com/portfolio-website/portfolio-server/internal/markdown"
	"github.com/portfolio-website/portfolio-server/internal/projects/repository"
	"github.com/portfolio-website/portfolio-server/internal/projects/service"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Read the project collection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every project as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProjects(cmd.Context(), func(svc *service.ProjectService) error {
				items, err := svc.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), items)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one project, with rendered description, as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProjects(cmd.Context(), func(svc *service.ProjectService) error {
				p, err := svc.GetProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), p)
			})
		},
	})

	return cmd
}

func withProjects(ctx context.Context, fn func(*service.ProjectService) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := bootstrap.OpenFirestore(ctx, cfg.Firestore)
	if err != nil {
		return err
	}
	defer client.Close()

	svc := service.NewProjectService(
		repository.NewProjectRepository(client, cfg.Firestore.Collection, cfg.Firestore.Timeout),
		markdown.NewRenderer(),
		assets.NewResolver(cfg.Assets.BaseURL, cfg.Assets.Bucket),
	)
	return fn(svc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
