package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
}

var playlistLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List playlists",
	Run: func(cmd *cobra.Command, args []string) {
		lib, _, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Name", "Tracks", "Updated"})
		for _, pl := range lib.Playlists() {
			t.AppendRow(table.Row{pl.ID, pl.Name, len(pl.Tracks), pl.UpdatedAt.Format("2006-01-02 15:04")})
		}
		t.Render()
	},
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		pl := lib.CreatePlaylist(args[0])
		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Printf("Created playlist %s (%s)\n", pl.Name, pl.ID)
	},
}

var playlistRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		if !lib.DeletePlaylist(args[0]) {
			log.Fatalf("playlist %s not found", args[0])
		}
		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Println("Deleted")
	},
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		if !lib.RenamePlaylist(args[0], args[1]) {
			log.Fatalf("playlist %s not found", args[0])
		}
		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Println("Renamed")
	},
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <track-id>",
	Short: "Add a track to a playlist",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		track, ok := lib.TrackByID(args[1])
		if !ok {
			log.Fatalf("track %s not found", args[1])
		}
		if !lib.AddToPlaylist(args[0], track) {
			log.Fatalf("playlist %s not found or track already on it", args[0])
		}
		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Printf("Added %s\n", track.Title)
	},
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track-id>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("playlist: %v", err)
		}
		if !lib.RemoveFromPlaylist(args[0], args[1]) {
			log.Fatalf("playlist %s not found", args[0])
		}
		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Println("Removed")
	},
}

func init() {
	playlistCmd.AddCommand(playlistLsCmd, playlistCreateCmd, playlistRmCmd,
		playlistRenameCmd, playlistAddCmd, playlistRemoveCmd)
	rootCmd.AddCommand(playlistCmd)
}
