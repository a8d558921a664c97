// Package deepgram implements speech synthesis over deepgram's speak
// websocket.
package deepgram

import (
	"fmt"
	"os"
	"slices"

	"github.com/venla-ai/intake-core/core/audio"
	"github.com/venla-ai/intake-core/core/texttospeech"
)

type deepgramVoice string

const (
	VoiceAuraAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceAuraThalia  deepgramVoice = "aura-2-thalia-en"
	VoiceAuraOrion   deepgramVoice = "aura-2-orion-en"
	VoiceAuraArcas   deepgramVoice = "aura-2-arcas-en"

	defaultVoice = VoiceAuraAsteria
)

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{VoiceAuraAsteria, VoiceAuraThalia, VoiceAuraOrion, VoiceAuraArcas}
}

var _ texttospeech.Synthesizer = (*TextToSpeechClient)(nil)

type TextToSpeechClient struct {
	apiKey       string
	voice        deepgramVoice
	encodingInfo audio.EncodingInfo
}

type Option func(*TextToSpeechClient)

func WithAPIKey(apiKey string) Option {
	return func(c *TextToSpeechClient) { c.apiKey = apiKey }
}

func WithVoice(voice deepgramVoice) Option {
	return func(c *TextToSpeechClient) { c.voice = voice }
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) Option {
	return func(c *TextToSpeechClient) { c.encodingInfo = encodingInfo }
}

func NewTextToSpeechClient(opts ...Option) (*TextToSpeechClient, error) {
	client := &TextToSpeechClient{
		voice:        defaultVoice,
		encodingInfo: audio.GetTelephonyEncodingInfo(),
	}
	for _, opt := range opts {
		opt(client)
	}

	if !slices.Contains(GetAvailableVoices(), client.voice) {
		return nil, fmt.Errorf("invalid voice")
	}

	if client.apiKey == "" {
		apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
		if !ok {
			return nil, fmt.Errorf("deepgram api key not found")
		}
		client.apiKey = apiKey
	}

	return client, nil
}
