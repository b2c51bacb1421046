package ocrconv

// TFRecord export specific functionality.

import (
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"

	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	"github.com/ryszard/tfutils/proto/tensorflow/core/example" // package tensorflow
)

// CropRecord identifies one finished crop and the text it shows.
type CropRecord struct {
	Path  string // The crop image file.
	Label string // The text content of the crop.
}

// toExampleFeatures builds the feature map for a single crop. All values
// must be convertible to tensorflow.Feature.
func toExampleFeatures(rec CropRecord) (map[string]interface{}, error) {
	img, format, err := decodeImageConfig(rec.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode the image metadata of %q: %v", rec.Path, err)
	}

	imgData, err := ioutil.ReadFile(rec.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the image %q: %v", rec.Path, err)
	}

	f := make(map[string]interface{}, 8)
	f["image/height"] = img.Height
	f["image/width"] = img.Width
	f["image/filename"] = filepath.Base(rec.Path)
	f["image/encoded"] = imgData
	f["image/format"] = format
	f["image/text"] = rec.Label

	return f, nil
}

// WriteTFRecord does a streaming conversion, serialisation and file write of
// the crop records to one or more TFRecord files stored under recordFilePath
// (with suffixes added when numShards > 1).
func WriteTFRecord(recordFilePath string, records []CropRecord, numShards int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	if numShards <= 0 {
		numShards = 1
	}

	fmtShardSuffix := func(idx int) string {
		return fmt.Sprintf("-%05d-of-%05d", idx, numShards)
	}

	var shardFile *os.File
	shardSize := int(math.Ceil(float64(len(records)) / float64(numShards)))
	shardIdx := -1

	// Convert and serialise one record at a time.
	for i, rec := range records {
		// Check if a new shard file needs to be opened for writing.
		if i%shardSize == 0 {
			shardIdx++

			if shardFile != nil {
				_ = shardFile.Close()
				shardFile = nil
			}

			shardPath := recordFilePath
			if numShards > 1 {
				shardPath += fmtShardSuffix(shardIdx)
			}
			f, err := os.Create(shardPath)
			if err != nil {
				return fmt.Errorf("failed to create shard at %q: %v", shardPath, err)
			}
			shardFile = f
		}

		features, err := toExampleFeatures(rec)
		if err != nil {
			return err
		}
		tfExample := example.New(features)

		if err := writeTFRecordExample(shardFile, tfExample); err != nil {
			_ = shardFile.Close()
			return fmt.Errorf("failed to write example for %q: %v", rec.Path, err)
		}
	}

	if shardFile != nil {
		return shardFile.Close()
	}

	return nil
}

// writeTFRecordExample serialises the example and writes it as a TFRecord
// to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}
