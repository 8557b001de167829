/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"github.com/chip8-interp/chip8/internal/driver"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate    = 22050
	toneFrequency = 440
	toneVolume    = 24
)

var (
	/// Audio device the beep is queued on, 0 when audio is disabled.
	///
	Audio sdl.AudioDeviceID

	// position within the square wave, carried between frames
	phase int
)

/// InitAudio opens an audio device for the CHIP-8 beep.
///
func InitAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	Audio = dev

	// start playing whatever gets queued
	sdl.PauseAudioDevice(Audio, false)
	return nil
}

/// CloseAudio releases the audio device.
///
func CloseAudio() {
	if Audio != 0 {
		sdl.CloseAudioDevice(Audio)
		Audio = 0
	}
}

/// Tone keeps a square wave queued while the sound timer is running.
///
func Tone(beeping bool) {
	if Audio == 0 {
		return
	}

	if !beeping {
		sdl.ClearQueuedAudio(Audio)
		return
	}

	n := sampleRate / driver.FrameRate

	// stay a couple of frames ahead of the device
	if sdl.GetQueuedAudioSize(Audio) > uint32(2*n) {
		return
	}

	half := sampleRate / toneFrequency / 2
	buf := make([]byte, n)

	for i := range buf {
		sample := int8(toneVolume)
		if (phase/half)&1 != 0 {
			sample = -sample
		}

		buf[i] = byte(sample)
		phase++
	}

	_ = sdl.QueueAudio(Audio, buf)
}
