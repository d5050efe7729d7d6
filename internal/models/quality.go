package models

import "strings"

// QualityPreset names a conversion profile understood by the backend's
// transcoding step. The client forwards the value verbatim and never
// interprets its semantics beyond display formatting.
type QualityPreset string

const (
	QualityHigh                          QualityPreset = "high"
	QualityStandard                      QualityPreset = "standard"
	QualityUltraHD                       QualityPreset = "ultraHD"
	QualityTikTokToYouTube169            QualityPreset = "tiktokToYouTube16_9"
	QualityTikTokToYouTube169Blur        QualityPreset = "tiktokToYouTube16_9Blur"
	QualityTikTokToYouTubeSimple         QualityPreset = "tiktokToYouTubeSimple"
	QualityTikTokToYouTubeColorBorder    QualityPreset = "tiktokToYouTubeColorBorder"
	QualityTikTokToYouTubeHighPerf       QualityPreset = "tiktokToYouTubeHighPerformance"
	QualityTikTokToYouTubeSubtitle       QualityPreset = "tiktokToYouTubeSubtitle"
	QualityTikTokTo720p                  QualityPreset = "tiktokTo720p"
)

// QualityPresets lists every preset accepted by the backend, in display order.
func QualityPresets() []QualityPreset {
	return []QualityPreset{
		QualityHigh,
		QualityStandard,
		QualityUltraHD,
		QualityTikTokToYouTube169,
		QualityTikTokToYouTube169Blur,
		QualityTikTokToYouTubeSimple,
		QualityTikTokToYouTubeColorBorder,
		QualityTikTokToYouTubeHighPerf,
		QualityTikTokToYouTubeSubtitle,
		QualityTikTokTo720p,
	}
}

// Valid reports whether q is one of the known presets.
func (q QualityPreset) Valid() bool {
	for _, p := range QualityPresets() {
		if q == p {
			return true
		}
	}
	return false
}

// Label renders the preset key as a human-readable option label: camelCase
// segments are split on upper-case letters and the platform names are
// rejoined ("tiktokToYouTube16_9" -> "Tiktok To YouTube16_9").
func (q QualityPreset) Label() string {
	var b strings.Builder
	for i, r := range string(q) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	label := b.String()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	label = strings.ReplaceAll(label, "Tik Tok", "TikTok")
	label = strings.ReplaceAll(label, "You Tube", "YouTube")
	return label
}
