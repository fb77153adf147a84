package driver

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"groovebot/internal/music/player"

	"layeh.com/gopus"
)

// pcmStream carries one track's PCM from ffmpeg into the voice connection.
// Exactly one value is ever delivered on done: nil after a normal finish
// or stop, the failure otherwise.
type pcmStream struct {
	pcm      io.ReadCloser
	cleanup  func()
	done     chan error
	stop     chan struct{}
	stopOnce sync.Once
	paused   atomic.Bool
}

func newPCMStream(pcm io.ReadCloser, cleanup func()) *pcmStream {
	return &pcmStream{
		pcm:     pcm,
		cleanup: cleanup,
		done:    make(chan error, 1),
		stop:    make(chan struct{}),
	}
}

func (s *pcmStream) Done() <-chan error { return s.done }

func (s *pcmStream) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *pcmStream) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// pump reads 20ms PCM frames, Opus-encodes them and feeds the voice send
// channel until the source drains or the stream is stopped.
func (s *pcmStream) pump(h player.VoiceHandle) {
	var streamErr error
	defer func() {
		s.cleanup()
		s.pcm.Close()
		h.Speaking(false)
		s.done <- streamErr
	}()

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		streamErr = fmt.Errorf("encoder error: %w", err)
		return
	}

	h.Speaking(true)

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		for s.paused.Load() {
			select {
			case <-s.stop:
				return
			case <-time.After(100 * time.Millisecond):
			}
		}

		if _, err := io.ReadFull(s.pcm, pcmBuf); err != nil {
			// EOF is a normal finish; a short final frame is close
			// enough to one to not be worth reporting.
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				streamErr = fmt.Errorf("read error: %w", err)
			}
			return
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			streamErr = fmt.Errorf("encode error: %w", err)
			return
		}

		select {
		case h.OpusSend() <- opus:
		case <-s.stop:
			return
		}
	}
}
