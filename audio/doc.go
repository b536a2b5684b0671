// Package audio normalizes uploaded audio for the speech model.
//
// The model expects mono 16 kHz input. A Normalizer loads a clip through a
// Decoder, rejects anything other than mono or stereo, resamples and
// downmixes as needed, and writes a normalized WAV copy only when it
// changed something.
//
// Backends:
//
//   - audio/wav: native PCM WAV decoding and encoding
//   - audio/ffmpeg: ffprobe/ffmpeg for every other container
//
// A Dispatcher picks the backend by file extension.
package audio
