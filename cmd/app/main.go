package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "yatube",
		Usage: "blog platform with groups, comments and subscriptions",
		Commands: []*cli.Command{
			{
				Name:     "serve",
				Usage:    "Start the web server",
				Category: "Server",
				Action:   startServer,
			},
			{
				Name:     "migrate",
				Usage:    "Create or update the database schema",
				Category: "Server",
				Action:   startMigrate,
			},
			{
				Name:     "cache",
				Usage:    "Manage the page cache",
				Category: "Admin",
				Subcommands: []*cli.Command{
					{
						Name:   "flush",
						Usage:  "Drop every cached page",
						Action: flushCache,
					},
				},
			},
			{
				Name:     "group",
				Usage:    "Manage groups",
				Category: "Admin",
				Subcommands: []*cli.Command{
					{
						Name:      "create",
						Usage:     "Create a group",
						ArgsUsage: "<slug>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Required: true},
							&cli.StringFlag{Name: "description", Required: true},
						},
						Action: createGroup,
					},
					{
						Name:   "list",
						Usage:  "List groups",
						Action: listGroups,
					},
					{
						Name:      "delete",
						Usage:     "Delete a group; its posts are kept without a group",
						ArgsUsage: "<slug>",
						Action:    deleteGroup,
					},
				},
			},
			{
				Name:     "user",
				Usage:    "Manage users",
				Category: "Admin",
				Subcommands: []*cli.Command{
					{
						Name:      "delete",
						Usage:     "Delete a user with their posts, comments and subscriptions",
						ArgsUsage: "<username>",
						Action:    deleteUser,
					},
				},
			},
			{
				Name:     "post",
				Usage:    "Manage posts",
				Category: "Admin",
				Subcommands: []*cli.Command{
					{
						Name:      "delete",
						Usage:     "Delete a post with its comments",
						ArgsUsage: "<id>",
						Action:    deletePost,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("yatube: %v", err)
	}
}
