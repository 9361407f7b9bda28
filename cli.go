/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/Seednode/amongus/internal/bootstrap"
	"github.com/Seednode/amongus/internal/device"
	"github.com/Seednode/amongus/internal/roster"
	"github.com/fatih/color"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type gameFlags struct {
	room      string
	round     int
	impostors int
}

func (g *gameFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&g.room, "room", "r", "", "room code, used as the seed (env: AMONGUS_ROOM)")
	fs.IntVarP(&g.round, "round", "n", 1, "round number, 1-10 (env: AMONGUS_ROUND)")
	fs.IntVarP(&g.impostors, "impostors", "i", 1, "number of impostors, 1-2 (env: AMONGUS_IMPOSTORS)")
}

// session builds an admin session from the flags and roster arguments.
func (g *gameFlags) session(cfg *Config, base *url.URL, names []string) *AdminSession {
	s := newAdminSession(base, cfg.room(g.room))
	s.round = assign.ClampRound(g.round)
	s.impostorCount = assign.ClampImpostors(g.impostors)
	s.roster = roster.New(names)

	return s
}

func writeAssignments(w io.Writer, as []assign.Assignment) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tPLAYER\tWORD\tROLE")
	for i, a := range as {
		role := string(a.Role)
		if a.Role == assign.Impostor {
			role = color.New(color.FgRed, color.Bold).Sprint(role)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, a.Name, a.Word, role)
	}

	return tw.Flush()
}

func newAssignCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	g := &gameFlags{}

	cmd := &cobra.Command{
		Use:   "assign [flags] NAME...",
		Short: "Print every player's role and word for a round.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			view, err := g.session(cfg, &url.URL{}, args).view()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Room %s · Round %d · Theme %s\n", view.Room, view.Round, color.CyanString(view.Theme))
			if view.TooFew {
				fmt.Fprintln(out, color.YellowString("At least 2 players are needed."))
			}

			return writeAssignments(out, view.Assignments)
		},
	}

	g.register(cmd)
	bindFlags(v, cmd.Flags())

	return cmd
}

func newLinkCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	g := &gameFlags{}
	var baseURL string

	cmd := &cobra.Command{
		Use:   "link [flags] NAME...",
		Short: "Print the player link and the one-time init link, with a QR code.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			base, err := url.Parse(baseURL)
			if err != nil {
				return fmt.Errorf("invalid --base-url: %w", err)
			}
			if base.Scheme == "" || base.Host == "" {
				return fmt.Errorf("invalid --base-url: %q is not absolute", baseURL)
			}

			view, err := g.session(cfg, base, args).view()
			if err != nil {
				return err
			}

			q, err := qrcode.New(view.InitLink, qrcode.Low)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\n\n", color.New(color.Bold).Sprint("Player Link"), view.PlayerLink)
			fmt.Fprintf(out, "%s\n%s\n\n", color.New(color.Bold).Sprint("Init Player Link (one-time)"), view.InitLink)
			fmt.Fprint(out, q.ToSmallString(false))

			return nil
		},
	}

	g.register(cmd)
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080/", "public URL of the game page (env: AMONGUS_BASE_URL)")
	bindFlags(v, cmd.Flags())

	return cmd
}

func newPlayerCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	var (
		room    string
		payload string
		name    string
		round   int
	)

	cmd := &cobra.Command{
		Use:   "player",
		Short: "Set up this device from an init link payload, or reveal your word.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			store, err := device.OpenFileStore(cfg.stateFile)
			if err != nil {
				return fmt.Errorf("opening %s: %w", cfg.stateFile, err)
			}
			st := device.New(store)
			out := cmd.OutOrStdout()

			linkRoom, payload := fromInitLink(payload)
			if room == "" {
				room = linkRoom
			}
			seed := cfg.room(room)

			if payload != "" {
				snap, err := st.Bootstrap(seed, payload)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Device ready for room %s with %d players.\n", seed, len(snap.Roster))
				logf(cfg, "GAMES: Stored roster for room %q in %s", seed, cfg.stateFile)
			}

			if name == "" {
				if payload == "" {
					return errors.New("nothing to do: pass --bootstrap, --name, or both")
				}
				return nil
			}

			reveal, err := st.Lookup(seed, name, round)
			if errors.Is(err, device.ErrUninitialized) {
				return fmt.Errorf("%w: run again with --bootstrap from the admin's Init Player Link", err)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Round %d · Theme %s\n", reveal.Round, reveal.Theme)
			fmt.Fprintln(out, color.New(color.Bold).Sprint(reveal.Word))

			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&room, "room", "r", "", "room code from the player link (env: AMONGUS_ROOM)")
	fs.StringVar(&payload, "bootstrap", "", "init link, or just its bootstrap payload (env: AMONGUS_BOOTSTRAP)")
	fs.StringVar(&name, "name", "", "your name as it appears on the roster (env: AMONGUS_NAME)")
	fs.IntVarP(&round, "round", "n", 1, "round announced by the admin, 1-10 (env: AMONGUS_ROUND)")
	bindFlags(v, fs)

	return cmd
}

// fromInitLink accepts either a whole init link or its bare payload, and
// returns the link's room (if any) with the payload.
func fromInitLink(s string) (string, string) {
	u, err := url.Parse(s)
	if err != nil || u.RawQuery == "" {
		return "", s
	}

	q := u.Query()
	if p := q.Get(bootstrap.ParamBootstrap); p != "" {
		return q.Get(bootstrap.ParamRoom), p
	}

	return "", s
}
