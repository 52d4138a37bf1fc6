package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/tunes/internal/tags"
)

// Decode picks a decoder by file extension. On success the returned stream
// owns f and closes it; on failure the caller still owns f.
func Decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))

	switch ext {
	case tags.ExtMP3:
		return decodeMP3(f)
	case tags.ExtFLAC:
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err := tags.SkipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case tags.ExtWAV:
		return wav.Decode(f)
	case tags.ExtOGG:
		return vorbis.Decode(f)
	case tags.ExtM4A:
		return decodeM4A(f)
	case tags.ExtAAC:
		// .aac is either a raw ADTS stream or an MP4 container.
		adts, err := tags.SeekADTS(f)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if adts {
			return decodeADTS(f)
		}
		return decodeM4A(f)
	}
	return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
}

// Verify Decode matches DecodeFunc at compile time.
var _ DecodeFunc = Decode
