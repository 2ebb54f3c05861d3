package main

import (
	"errors"
	"fmt"

	"yatube/internal/config"
	groupPort "yatube/internal/ports/group"

	"github.com/urfave/cli/v2"
)

// withServices runs fn with the services loaded, then releases everything.
func withServices(fn func(s *srv) error) error {
	s, err := newSrv()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.loadStorage(); err != nil {
		return err
	}
	s.loadServices()
	return fn(s)
}

func requireArg(cctx *cli.Context, name string) (string, error) {
	arg := cctx.Args().First()
	if arg == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return arg, nil
}

func flushCache(cctx *cli.Context) error {
	s, err := newSrv()
	if err != nil {
		return err
	}
	defer s.close()

	if s.settings.CacheBackend == config.CacheMemory {
		return errors.New("the memory cache lives inside the server process; send it SIGHUP to flush")
	}
	if err := s.loadCache(cctx.Context); err != nil {
		return err
	}
	if err := s.cache.Clear(cctx.Context); err != nil {
		return err
	}
	fmt.Println("page cache flushed")
	return nil
}

func createGroup(cctx *cli.Context) error {
	slug, err := requireArg(cctx, "slug")
	if err != nil {
		return err
	}
	return withServices(func(s *srv) error {
		g, err := s.groupSvc.CreateGroup(cctx.Context, groupPort.GroupForm{
			Title:       cctx.String("title"),
			Slug:        slug,
			Description: cctx.String("description"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("created group %s (%s)\n", g.Slug, g.ID)
		return nil
	})
}

func listGroups(cctx *cli.Context) error {
	return withServices(func(s *srv) error {
		groups, err := s.groupSvc.ListGroups(cctx.Context)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Printf("%s\t%s\n", g.Slug, g.Title)
		}
		return nil
	})
}

func deleteGroup(cctx *cli.Context) error {
	slug, err := requireArg(cctx, "slug")
	if err != nil {
		return err
	}
	return withServices(func(s *srv) error {
		return s.groupSvc.DeleteGroup(cctx.Context, slug)
	})
}

func deleteUser(cctx *cli.Context) error {
	username, err := requireArg(cctx, "username")
	if err != nil {
		return err
	}
	return withServices(func(s *srv) error {
		return s.userSvc.DeleteUser(cctx.Context, username)
	})
}

func deletePost(cctx *cli.Context) error {
	id, err := requireArg(cctx, "id")
	if err != nil {
		return err
	}
	return withServices(func(s *srv) error {
		return s.postSvc.DeletePost(cctx.Context, id)
	})
}
