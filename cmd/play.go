package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/logger"
	"github.com/danfragoso/deskamp/internal/metadata"
	"github.com/danfragoso/deskamp/internal/model"
	"github.com/danfragoso/deskamp/internal/player"
	"github.com/danfragoso/deskamp/internal/scanner"
	"github.com/danfragoso/deskamp/internal/transport"
)

var (
	playShuffle  bool
	playRepeat   string
	playIndex    int
	playArtist   string
	playAlbum    string
	playPlaylist string
)

var playCmd = &cobra.Command{
	Use:   "play [search | files...]",
	Short: "Play tracks from the library or from files",
	Long: `Queue the filtered library (or a playlist) and start playback.
Arguments that name existing audio files are extracted and queued
directly without touching the library. Once playing, single-letter
commands control the player:

  p  play/pause    n  next         b  previous
  s  toggle shuffle   r  cycle repeat   m  toggle mute
  +  volume up     -  volume down  q  quit`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !transport.AudioAvailable {
			log.Fatal("play: audio playback is not supported in this build")
		}

		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("play: %v", err)
		}

		var tracks []*model.Track
		if paths := pathArgs(args); len(paths) > 0 {
			extractor := metadata.NewExtractor(metadata.Options{
				EmbeddedCacheSize: cfg.EmbeddedArtCacheSize,
				FolderCacheSize:   cfg.FolderArtCacheSize,
				Logger:            logger.L(),
			})
			tracks = extractor.ExtractMany(paths, nil)
		} else {
			if len(args) > 0 {
				lib.SetSearchQuery(args[0])
			}
			if playArtist != "" {
				lib.SelectArtist(playArtist)
			}
			if playAlbum != "" {
				lib.SelectAlbum(playAlbum)
			}
			if playPlaylist != "" {
				lib.SelectPlaylist(playPlaylist)
			}
			tracks = lib.FilteredTracks()
		}
		if len(tracks) == 0 {
			fmt.Println("Nothing to play")
			return
		}

		tr, err := transport.NewBeep(nil)
		if err != nil {
			log.Fatalf("play: %v", err)
		}
		defer tr.Close()

		pl := player.New(tr, logger.L())
		tr.SetSink(pl)

		if err := pl.LoadSettings(st); err != nil {
			logger.Warn("load player settings", zap.Error(err))
		}
		if cmd.Flags().Changed("shuffle") {
			pl.SetShuffle(playShuffle)
		}
		if cmd.Flags().Changed("repeat") {
			pl.SetRepeat(player.RepeatMode(playRepeat))
		}

		var last string
		pl.OnChange(func() {
			current := pl.Current()
			if current == nil {
				return
			}
			line := fmt.Sprintf("%s - %s", current.Artist, current.Title)
			if line != last {
				last = line
				fmt.Printf("\nNow playing: %s [%s]\n", line, formatDuration(current.Duration))
			}
		})

		pl.SetQueue(tracks, playIndex)
		fmt.Printf("Queued %d tracks (shuffle %v, repeat %s)\n",
			len(pl.Queue()), pl.Shuffle(), pl.Repeat())

		runControlLoop(pl)

		if err := pl.SaveSettings(st); err != nil {
			logger.Warn("save player settings", zap.Error(err))
		}
	},
}

// pathArgs returns args when every argument names an existing audio
// file. Otherwise it returns nil and the args are a library search.
func pathArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || info.IsDir() || !scanner.IsAudioFile(arg) {
			return nil
		}
	}
	return args
}

// runControlLoop reads single-letter commands from stdin until quit or EOF.
func runControlLoop(pl *player.Player) {
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		switch strings.TrimSpace(in.Text()) {
		case "p":
			pl.TogglePlayPause()
		case "n":
			pl.Next()
		case "b":
			pl.Previous()
		case "s":
			pl.ToggleShuffle()
			fmt.Printf("shuffle %v\n", pl.Shuffle())
		case "r":
			pl.CycleRepeat()
			fmt.Printf("repeat %s\n", pl.Repeat())
		case "m":
			pl.ToggleMute()
			fmt.Printf("muted %v\n", pl.Muted())
		case "+":
			pl.SetVolume(pl.Volume() + 0.05)
			fmt.Printf("volume %.0f%%\n", pl.Volume()*100)
		case "-":
			pl.SetVolume(pl.Volume() - 0.05)
			fmt.Printf("volume %.0f%%\n", pl.Volume()*100)
		case "q":
			return
		case "":
		default:
			fmt.Println("commands: p n b s r m + - q")
		}
	}
}

func init() {
	playCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "shuffle the queue")
	playCmd.Flags().StringVar(&playRepeat, "repeat", "off", "repeat mode: off, all, one")
	playCmd.Flags().IntVar(&playIndex, "index", 0, "queue position to start from")
	playCmd.Flags().StringVar(&playArtist, "artist", "", "only tracks by this artist")
	playCmd.Flags().StringVar(&playAlbum, "album", "", "only tracks on this album")
	playCmd.Flags().StringVar(&playPlaylist, "playlist", "", "play this playlist id")
	rootCmd.AddCommand(playCmd)
}
