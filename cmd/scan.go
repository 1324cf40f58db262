package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danfragoso/deskamp/internal/fsys"
	"github.com/danfragoso/deskamp/internal/library"
	"github.com/danfragoso/deskamp/internal/logger"
	"github.com/danfragoso/deskamp/internal/metadata"
	"github.com/danfragoso/deskamp/internal/model"
	"github.com/danfragoso/deskamp/internal/scanner"
	"github.com/danfragoso/deskamp/internal/store"
)

var (
	scanDir   string
	scanWatch bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Index a folder of audio files into the library",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := scanDir
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = cfg.MusicDir
		}

		lib, st, err := openLibrary()
		if err != nil {
			log.Fatalf("scan: %v", err)
		}

		extractor := metadata.NewExtractor(metadata.Options{
			EmbeddedCacheSize: cfg.EmbeddedArtCacheSize,
			FolderCacheSize:   cfg.FolderArtCacheSize,
			Logger:            logger.L(),
		})
		sc := scanner.New(fsys.OSLister{}, logger.L())

		lib.SetScanning(true)
		fmt.Printf("Scanning %s...\n", dir)
		paths := sc.Discover(dir, func(d string) {
			lib.SetCurrentFolder(d)
		})
		fmt.Printf("Found %d audio files\n", len(paths))

		tracks := extractor.ExtractMany(paths, func(done, total int) {
			lib.SetScanProgress(done)
			if done%100 == 0 || done == total {
				fmt.Printf("  %d/%d\n", done, total)
			}
		})
		added := lib.AddTracks(tracks)
		lib.SetScanning(false)

		if err := lib.Save(st); err != nil {
			log.Fatalf("save library: %v", err)
		}
		fmt.Printf("Added %d new tracks (%d already known, %d total in library)\n",
			added, len(tracks)-added, len(lib.Tracks()))

		if scanWatch || cfg.WatchEnabled {
			watchFolder(dir, lib, st, extractor)
		}
	},
}

// watchFolder blocks, adding audio files as they appear in the folder.
func watchFolder(dir string, lib *library.Library, st store.Store, extractor *metadata.Extractor) {
	w, err := scanner.NewWatcher(func(path string) {
		track := extractor.Extract(path)
		if lib.AddTracks([]*model.Track{track}) > 0 {
			fmt.Printf("Added %s\n", path)
			if err := lib.Save(st); err != nil {
				logger.Error("save library", zap.Error(err))
			}
		}
	}, logger.L())
	if err != nil {
		log.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		log.Fatalf("watch %s: %v", dir, err)
	}
	fmt.Printf("Watching %s for new files (ctrl-c to stop)\n", dir)
	w.Run()
}

func init() {
	scanCmd.Flags().StringVar(&scanDir, "dir", "", "folder to scan (defaults to DESKAMP_MUSIC_DIR)")
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "keep watching the folder after the scan")
	rootCmd.AddCommand(scanCmd)
}
