package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// upper bound for a single ffprobe run
const probeTimeout = 30 * time.Second

var ErrNoDuration = errors.New("no duration in probe output")

// duration of an audio/video file as reported by ffprobe
func Duration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	out, err := ffmpeg.ProbeWithTimeout(filePath, probeTimeout, ffmpeg.KwArgs{"v": "quiet"})
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseProbe(out)
}

// reads format.duration (seconds, as a string) from ffprobe JSON
func parseProbe(out string) (time.Duration, error) {
	if !gjson.Valid(out) {
		return 0, fmt.Errorf("failed to parse ffprobe output: invalid json")
	}
	d := gjson.Get(out, "format.duration")
	if !d.Exists() || d.Float() <= 0 {
		return 0, ErrNoDuration
	}
	return time.Duration(d.Float() * float64(time.Second)), nil
}

// track length in milliseconds, the unit lyric timings use
func DurationMillis(filePath string) (int, error) {
	d, err := Duration(filePath)
	if err != nil {
		return 0, err
	}
	return int(d / time.Millisecond), nil
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".opus": true,
		".m4a":  true,
		".wma":  true,
		".aiff": true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
