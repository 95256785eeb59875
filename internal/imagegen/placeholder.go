package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"strings"
)

// palettes feed the placeholder gradient; the prompt hash picks one so the
// same prompt always renders the same image.
var palettes = [][2]string{
	{"#667eea", "#764ba2"},
	{"#f093fb", "#f5576c"},
	{"#4facfe", "#00f2fe"},
	{"#43e97b", "#38f9d7"},
	{"#fa709a", "#fee140"},
	{"#30cfd0", "#330867"},
	{"#ff9a9e", "#fecfef"},
	{"#a18cd1", "#fbc2eb"},
}

// PlaceholderBackend renders an inline SVG locally. It never fails and
// needs no credentials, so the orchestrator keeps it last in line.
type PlaceholderBackend struct{}

func NewPlaceholderBackend() *PlaceholderBackend {
	return &PlaceholderBackend{}
}

func (b *PlaceholderBackend) Name() string {
	return "placeholder"
}

func (b *PlaceholderBackend) Generate(_ context.Context, prompt, size string) (*Envelope, error) {
	width, height, err := parseSize(size)
	if err != nil {
		width, height, _ = parseSize(DefaultSize)
	}

	h := fnv.New32a()
	h.Write([]byte(prompt))
	palette := palettes[h.Sum32()%uint32(len(palettes))]

	// truncate on rune boundaries so multi-byte prompts stay valid UTF-8
	label := prompt
	if runes := []rune(label); len(runes) > 40 {
		label = string(runes[:40]) + "..."
	}
	label = escapeXML(label)

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<defs><linearGradient id="g" x1="0%%" y1="0%%" x2="100%%" y2="100%%">`+
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/>`+
		`</linearGradient></defs>`+
		`<rect width="%d" height="%d" fill="url(#g)"/>`+
		`<text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" `+
		`font-family="sans-serif" font-size="16" fill="#ffffff" opacity="0.9">%s</text>`+
		`</svg>`,
		width, height, width, height, palette[0], palette[1], width, height, label)

	encoded := base64.StdEncoding.EncodeToString([]byte(svg))
	return &Envelope{
		Success:   true,
		ImageData: "data:image/svg+xml;base64," + encoded,
		Service:   b.Name(),
	}, nil
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
