package cmd

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danfragoso/deskamp/internal/metadata"
)

var artSize int

var artCmd = &cobra.Command{
	Use:   "art <output-dir>",
	Short: "Export album artwork to a folder",
	Long: `Write one image per album into the output folder. Albums without
any artwork get a generated placeholder.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outDir := args[0]
		if err := os.MkdirAll(outDir, 0755); err != nil {
			log.Fatalf("art: %v", err)
		}

		lib, _, err := openLibrary()
		if err != nil {
			log.Fatalf("art: %v", err)
		}

		written := 0
		for _, album := range lib.Albums() {
			uri := album.Artwork
			if uri == "" {
				size := artSize
				if size <= 0 {
					size = 512
				}
				uri = metadata.Placeholder(album.Artist+" - "+album.Name, size)
			} else if artSize > 0 {
				uri = metadata.Thumbnail(uri, artSize)
			}

			data, ext, ok := decodeArtURI(uri)
			if !ok {
				continue
			}
			name := sanitizeFilename(album.Artist+" - "+album.Name) + ext
			if err := os.WriteFile(filepath.Join(outDir, name), data, 0644); err != nil {
				log.Fatalf("art: write %s: %v", name, err)
			}
			written++
		}
		fmt.Printf("Wrote %d covers to %s\n", written, outDir)
	},
}

// decodeArtURI splits a data: URI into raw bytes and a file extension.
func decodeArtURI(uri string) ([]byte, string, bool) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", false
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}

	ext := ".jpg"
	switch mime {
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/bmp":
		ext = ".bmp"
	case "image/webp":
		ext = ".webp"
	}
	return data, ext, true
}

// sanitizeFilename strips path separators and other unsafe characters.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

func init() {
	artCmd.Flags().IntVar(&artSize, "size", 0, "scale covers to this square size in pixels (0 keeps originals)")
	rootCmd.AddCommand(artCmd)
}
