package ocrconv

// The labelme to OCR training dataset conversion pipeline.

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Names of the entries created inside each output directory.
const (
	ImagesDirName = "images"
	ManifestName  = "labels.txt"
	ErrorLogName  = "error.txt"
)

// Options configures a conversion run.
type Options struct {
	ImageExts    []string // Recognized image extensions. Defaults to DefaultImageExts.
	JPEGQuality  int      // The quality for encoding JPEG crops [1, 100]. Defaults to 90.
	TFRecordName string   // When set, the dataset is also exported as TFRecord file(s) with this name.
	NumShards    int      // The number of TFRecord shard files. Defaults to 1.
}

// Stats summarises a conversion run.
type Stats struct {
	Images         int // Images processed.
	Crops          int // Crops written, equal to the number of manifest records.
	SkippedImages  int // Images without a matching annotation file.
	SkippedRegions int // Regions with an out-of-bounds bounding box.
}

// PrepareOutputRoot creates the dataset root directory at path. The run
// refuses to overwrite existing output, so it is an error for path to exist
// already; the pre-existing path is left unmodified in that case.
func PrepareOutputRoot(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("the output directory %q already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access the output directory %q: %v", path, err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create the output directory %q: %v", path, err)
	}
	return nil
}

// ConvertDir converts one directory of (image, annotation) file pairs into a
// cropped-image dataset under outPath.
//
// Image and annotation files pair by base file name. For every region of
// every paired image, the bounding box is cropped from the image and written
// to the images subdirectory of outPath as {base}_{index:%03d}{ext}, with
// index counting the regions of one annotation file from zero in file order.
// One manifest record per crop is appended to the labels file.
//
// Regions whose bounding box does not fit the image are skipped and recorded
// in errLog. Images without a matching annotation file are skipped with a
// console message. Both are recoverable; any other failure aborts the
// conversion.
func ConvertDir(inPath, outPath string, errLog *ErrorLog, opts Options) (Stats, error) {
	if len(opts.ImageExts) == 0 {
		opts.ImageExts = DefaultImageExts
	}
	if opts.JPEGQuality == 0 {
		opts.JPEGQuality = 90
	}

	// Scan and validate the input before anything is written.
	contents, err := ScanInputDir(inPath, opts.ImageExts)
	if err != nil {
		return Stats{}, err
	}
	if a, i := len(contents.AnnotationFiles), len(contents.ImageFiles); a != i {
		return Stats{}, fmt.Errorf("%q holds %d annotation files but %d image files",
			inPath, a, i)
	}

	imagesDir := filepath.Join(outPath, ImagesDirName)
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return Stats{}, fmt.Errorf("failed to create the output directory %q: %v", imagesDir, err)
	}

	manifest, err := CreateManifest(filepath.Join(outPath, ManifestName))
	if err != nil {
		return Stats{}, err
	}

	stats, err := convertImages(inPath, imagesDir, contents, manifest, errLog, opts)
	if cerr := manifest.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return stats, err
	}

	// Optionally export the finished dataset as TFRecord file(s).
	if opts.TFRecordName != "" {
		records, err := manifestCropRecords(imagesDir, filepath.Join(outPath, ManifestName))
		if err != nil {
			return stats, err
		}
		if err := WriteTFRecord(filepath.Join(outPath, opts.TFRecordName),
				records, opts.NumShards); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// convertImages runs the crop-and-emit loop over all paired images.
func convertImages(inPath, imagesDir string, contents DirContents, manifest *Manifest,
		errLog *ErrorLog, opts Options) (Stats, error) {

	var stats Stats
	annotations := annotationsByBase(contents.AnnotationFiles)
	total := len(contents.ImageFiles)
	digits := len(strconv.Itoa(total))
	start := time.Now()

	for ii, imageFile := range contents.ImageFiles {
		if (ii+1)%100 == 0 {
			log.Printf("%*d / %*d images processed", digits, ii+1, digits, total)
		}

		base, ext := splitName(imageFile)
		annFile, found := annotations[base]
		if !found {
			log.Printf("No matching annotation file for %q, skipping", imageFile)
			stats.SkippedImages++
			continue
		}

		regions, err := FromLabelMe(filepath.Join(inPath, annFile))
		if err != nil {
			return stats, err
		}

		img, err := loadImage(filepath.Join(inPath, imageFile))
		if err != nil {
			return stats, fmt.Errorf("failed to decode image %q: %v", imageFile, err)
		}
		width := img.Bounds().Dx()
		height := img.Bounds().Dy()

		for i, region := range regions {
			bbox := region.Bounds()
			if bbox.Empty() || !bbox.InImage(width, height) {
				if err := errLog.Record(imageFile, region.Label, bbox); err != nil {
					return stats, err
				}
				stats.SkippedRegions++
				continue
			}

			crop := cropRegion(img, bbox)
			outName := fmt.Sprintf("%s_%03d%s", base, i, ext)
			if err := saveImage(filepath.Join(imagesDir, outName), crop,
					opts.JPEGQuality); err != nil {
				return stats, fmt.Errorf("failed to save crop %q: %v", outName, err)
			}

			if err := manifest.Append(outName, region.Label); err != nil {
				return stats, err
			}
			stats.Crops++
		}

		stats.Images++
	}

	log.Printf("Converted %d images (%d crops) in %v",
		stats.Images, stats.Crops, time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// manifestCropRecords reads the finished manifest back into crop records for
// the TFRecord export.
func manifestCropRecords(imagesDir, manifestPath string) ([]CropRecord, error) {
	lines, err := readLines(manifestPath)
	if err != nil {
		return nil, err
	}

	records := make([]CropRecord, 0, len(lines))
	for _, line := range lines {
		name, label, err := parseManifestLine(line)
		if err != nil {
			return nil, fmt.Errorf("invalid record in %q: %v", manifestPath, err)
		}
		records = append(records, CropRecord{
			Path:  filepath.Join(imagesDir, name),
			Label: label,
		})
	}

	return records, nil
}
