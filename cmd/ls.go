package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/danfragoso/deskamp/internal/library"
)

var (
	lsView     string
	lsSearch   string
	lsSort     string
	lsDesc     bool
	lsArtist   string
	lsAlbum    string
	lsGenre    string
	lsYear     int
	lsPlaylist string
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the library",
	Long: `List tracks or one of the derived views (artists, albums, genres,
years). Search and facet flags narrow the track list; the playlist flag
shows a playlist as-is, ignoring filters.`,
	Run: func(cmd *cobra.Command, args []string) {
		lib, _, err := openLibrary()
		if err != nil {
			log.Fatalf("ls: %v", err)
		}

		lib.SetSearchQuery(lsSearch)
		if lsArtist != "" {
			lib.SelectArtist(lsArtist)
		}
		if lsAlbum != "" {
			lib.SelectAlbum(lsAlbum)
		}
		if lsGenre != "" {
			lib.SelectGenre(lsGenre)
		}
		if lsYear != 0 {
			lib.SelectYear(lsYear)
		}
		if lsPlaylist != "" {
			lib.SelectPlaylist(lsPlaylist)
		}
		if lsSort != "" {
			lib.SetSortField(library.SortField(lsSort))
		}
		if lsDesc {
			lib.SetSortDirection(library.SortDesc)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)

		switch library.ViewType(lsView) {
		case library.ViewArtists:
			t.AppendHeader(table.Row{"Artist", "Tracks", "Albums"})
			for _, a := range lib.Artists() {
				t.AppendRow(table.Row{a.Name, a.TrackCount, a.AlbumCount})
			}
		case library.ViewAlbums:
			t.AppendHeader(table.Row{"Album", "Artist", "Year", "Tracks"})
			for _, a := range lib.Albums() {
				t.AppendRow(table.Row{a.Name, a.Artist, yearCell(a.Year), a.TrackCount})
			}
		case library.ViewGenres:
			t.AppendHeader(table.Row{"Genre", "Tracks"})
			for _, g := range lib.Genres() {
				t.AppendRow(table.Row{g.Name, g.TrackCount})
			}
		case library.ViewYears:
			t.AppendHeader(table.Row{"Year", "Tracks"})
			for _, y := range lib.Years() {
				t.AppendRow(table.Row{y.Year, y.TrackCount})
			}
		default:
			tracks := lib.FilteredTracks()
			t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Year", "Time", "Format"})
			for _, tr := range tracks {
				t.AppendRow(table.Row{
					tr.TrackNumber, tr.Title, tr.Artist, tr.Album,
					yearCell(tr.Year), formatDuration(tr.Duration), tr.Format,
				})
			}
			t.Render()
			fmt.Printf("%d tracks\n", len(tracks))
			return
		}
		t.Render()
	},
}

// yearCell renders a year, hiding the zero value for unknown years.
func yearCell(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func init() {
	lsCmd.Flags().StringVar(&lsView, "view", "songs", "view: songs, artists, albums, genres, years")
	lsCmd.Flags().StringVar(&lsSearch, "search", "", "filter tracks by title, artist, album or genre")
	lsCmd.Flags().StringVar(&lsSort, "sort", "", "sort field: title, artist, album, year, genre, duration, bitrate, trackNumber")
	lsCmd.Flags().BoolVar(&lsDesc, "desc", false, "sort descending")
	lsCmd.Flags().StringVar(&lsArtist, "artist", "", "only tracks by this artist")
	lsCmd.Flags().StringVar(&lsAlbum, "album", "", "only tracks on this album")
	lsCmd.Flags().StringVar(&lsGenre, "genre", "", "only tracks in this genre")
	lsCmd.Flags().IntVar(&lsYear, "year", 0, "only tracks from this year")
	lsCmd.Flags().StringVar(&lsPlaylist, "playlist", "", "show this playlist id instead of the filtered library")
	rootCmd.AddCommand(lsCmd)
}
