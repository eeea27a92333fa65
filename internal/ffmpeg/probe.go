package ffmpeg

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	NbFrames   string `json:"nb_frames"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe runs ffprobe on path and returns its primary video stream.
func Probe(path string) (*VideoMetadata, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %s", path)
	}
	meta, err := parseProbe(out)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %s", path)
	}
	return meta, nil
}

func parseProbe(raw string) (*VideoMetadata, error) {
	var data probeOutput
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	var video *probeStream
	for i := range data.Streams {
		if data.Streams[i].CodecType == "video" {
			video = &data.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, errors.New("no video stream found")
	}

	// stream duration first, then container duration, then frames / rate
	duration := parseSeconds(video.Duration)
	if duration == 0 {
		duration = parseSeconds(data.Format.Duration)
	}
	if duration == 0 {
		frames := parseSeconds(video.NbFrames)
		if rate := parseRate(video.RFrameRate); frames > 0 && rate > 0 {
			duration = frames / rate
		}
	}
	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	return &VideoMetadata{
		Duration: duration,
		Width:    video.Width,
		Height:   video.Height,
		Codec:    video.CodecName,
	}, nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseSeconds(s)
	}
	n, d := parseSeconds(num), parseSeconds(den)
	if d == 0 {
		return 0
	}
	return n / d
}
