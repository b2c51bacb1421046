// Converts labelme annotation output into a dataset of cropped text images
// for training an OCR model.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sensorable/ocrconv"
)

var (
	inputPath  string // The labelme output root directory.
	outputPath string // The dataset destination root; must not exist yet.
	groupName  string // Restricts the conversion to a single group subdirectory.

	imageExts     []string // The recognized image file extensions.
	tfRecordName  string   // The TFRecord export file name (empty disables the export).
	numShardFiles int      // The number of TFRecord shard files to create.
	jpegQuality   int      // The JPEG quality for JPEG crops.
)

func init() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		_, _ = fmt.Fprintln(os.Stderr, "  required:\t-input_path <dir> -output_path <dir>")
		_, _ = fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}

	printUsageAndExit := func(msg ...interface{}) {
		log.Print(msg...)
		flag.Usage()
		os.Exit(1)
	}

	// Path arguments.
	flag.StringVar(&inputPath, "input_path", "",
		"The `path` to the labelme output data: either a flat directory of image and"+
				" annotation file pairs or a root with one such subdirectory per group")
	flag.StringVar(&outputPath, "output_path", "",
		"The destination `path` for the OCR training dataset; must not exist yet")
	flag.StringVar(&groupName, "group_name", "",
		"The `name` of a single group subdirectory to convert instead of all groups")

	// Conversion arguments.
	exts := flag.String("image_exts", strings.Join(ocrconv.DefaultImageExts, ","),
		"The comma-separated list of recognized image file `extensions`"+
				" (matched case-insensitively)")
	flag.StringVar(&tfRecordName, "tfrecord", "",
		"The file `name` for an additional TFRecord export written into each output"+
				" directory (empty disables the export)")
	flag.IntVar(&numShardFiles, "num-shards", 1,
		"The number of TFRecord shard files to create")
	flag.IntVar(&jpegQuality, "jpeg-quality", 90,
		"The quality to use when encoding JPEG crops [1, 100]")

	// Parse and validate flags.
	flag.Parse()

	if inputPath == "" || outputPath == "" {
		printUsageAndExit("Missing input or output path argument")
	}

	imageExts = strings.Split(*exts, ",")
	for i, ext := range imageExts {
		imageExts[i] = strings.TrimSpace(ext)
		if imageExts[i] == "" {
			printUsageAndExit("Invalid value in -image_exts: ", *exts)
		}
	}

	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = 90
		log.Print("Invalid JPEG quality, setting it to ", jpegQuality)
	}
	if numShardFiles < 1 {
		printUsageAndExit("Invalid value for -num-shards: ", numShardFiles)
	}

	// Clean path arguments.
	inputPath = filepath.Clean(inputPath)
	outputPath = filepath.Clean(outputPath)
	if inputPath == outputPath {
		printUsageAndExit("The input and output paths cannot be identical")
	}
}

func main() {
	opts := ocrconv.Options{
		ImageExts:    imageExts,
		JPEGQuality:  jpegQuality,
		TFRecordName: tfRecordName,
		NumShards:    numShardFiles,
	}

	// Determine the groups to convert. A nil list means the input root itself
	// holds a flat dataset.
	var groups []string
	if groupName != "" {
		groups = []string{groupName}
	} else {
		var err error
		if groups, err = ocrconv.ListGroups(inputPath); err != nil {
			log.Fatal("Failed to read the input directory: ", err)
		}
	}

	// All input directories must exist before any output is created.
	for _, group := range groups {
		groupPath := filepath.Join(inputPath, group)
		if info, err := os.Stat(groupPath); err != nil || !info.IsDir() {
			log.Fatalf("Cannot access the input directory %q: %v", groupPath, err)
		}
	}

	// The run refuses to overwrite existing output.
	if err := ocrconv.PrepareOutputRoot(outputPath); err != nil {
		log.Fatal(err)
	}

	errLog, err := ocrconv.CreateErrorLog(filepath.Join(outputPath, ocrconv.ErrorLogName))
	if err != nil {
		log.Fatal(err)
	}

	var total ocrconv.Stats
	if groups == nil {
		total = convertGroup(inputPath, outputPath, "", errLog, opts)
	} else {
		for i, group := range groups {
			log.Printf("[%d/%d] group %q", i+1, len(groups), group)
			stats := convertGroup(filepath.Join(inputPath, group),
				filepath.Join(outputPath, group), group, errLog, opts)

			total.Images += stats.Images
			total.Crops += stats.Crops
			total.SkippedImages += stats.SkippedImages
			total.SkippedRegions += stats.SkippedRegions
		}
	}

	if err := errLog.Close(); err != nil {
		log.Fatal("Failed to finalize the error log: ", err)
	}

	log.Printf("Done: %d images converted into %d crops"+
			" (%d images and %d regions skipped)",
		total.Images, total.Crops, total.SkippedImages, total.SkippedRegions)
}

// convertGroup converts a single input directory and terminates the process
// on a fatal error.
func convertGroup(inPath, outPath, group string, errLog *ocrconv.ErrorLog,
		opts ocrconv.Options) ocrconv.Stats {

	if group != "" {
		if err := errLog.BeginGroup(group); err != nil {
			log.Fatal("Failed to write to the error log: ", err)
		}
	}

	stats, err := ocrconv.ConvertDir(inPath, outPath, errLog, opts)
	if err != nil {
		log.Fatal("Conversion failed: ", err)
	}

	if group != "" {
		if err := errLog.EndGroup(); err != nil {
			log.Fatal("Failed to write to the error log: ", err)
		}
	}

	return stats
}
