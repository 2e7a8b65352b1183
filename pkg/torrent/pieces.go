package torrent

import (
	"context"
	"crypto/sha1"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	throttle "github.com/boz/go-throttle"
	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/i18n"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Progress reports how many pieces have been hashed so far
type Progress struct {
	Done  int
	Total int
}

// Hasher computes the SHA-1 piece hashes of a list of files treated as one
// continuous stream of bytes
type Hasher struct {
	Log *logrus.Entry
	Tr  *i18n.TranslationSet

	// Workers is the number of hashing goroutines, the number of CPUs when 0
	Workers int
	// ProgressInterval is the minimum time between two OnProgress calls
	ProgressInterval time.Duration
	OnProgress       func(Progress)

	mutex  deadlock.Mutex
	hashes map[int][sha1.Size]byte
	done   int
	total  int
}

type piece struct {
	index int
	data  []byte
}

func NewHasher(log *logrus.Entry, tr *i18n.TranslationSet) *Hasher {
	return &Hasher{Log: log, Tr: tr, ProgressInterval: 100 * time.Millisecond}
}

// PieceCount is the number of pieces needed for totalSize bytes
func PieceCount(totalSize int64, pieceSize int64) int {
	if pieceSize <= 0 || totalSize <= 0 {
		return 0
	}
	return int((totalSize + pieceSize - 1) / pieceSize)
}

// Hash reads files below root in order and returns the concatenated hashes
// of every pieceSize chunk; the last piece may be shorter
func (h *Hasher) Hash(ctx context.Context, root string, files []File, pieceSize int64) ([]byte, error) {
	if pieceSize <= 0 {
		return nil, errors.Errorf("invalid piece size %d", pieceSize)
	}

	var totalSize int64
	for _, file := range files {
		totalSize += file.Size
	}

	h.mutex.Lock()
	h.hashes = map[int][sha1.Size]byte{}
	h.done = 0
	h.total = PieceCount(totalSize, pieceSize)
	h.mutex.Unlock()

	workers := h.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	throttler := throttle.ThrottleFunc(h.ProgressInterval, true, h.reportProgress)
	defer throttler.Stop()

	group, ctx := errgroup.WithContext(ctx)
	pieces := make(chan piece, workers)

	group.Go(func() error {
		defer close(pieces)
		return h.readPieces(ctx, root, files, pieceSize, pieces)
	})

	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for p := range pieces {
				sum := sha1.Sum(p.data)
				h.mutex.Lock()
				h.hashes[p.index] = sum
				h.done++
				h.mutex.Unlock()
				throttler.Trigger()

				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		h.Log.Warn(err)
		return nil, err
	}

	h.mutex.Lock()
	h.total = len(h.hashes)
	res := make([]byte, 0, len(h.hashes)*sha1.Size)
	for index := 0; index < len(h.hashes); index++ {
		sum := h.hashes[index]
		res = append(res, sum[:]...)
	}
	h.mutex.Unlock()

	h.reportProgress()
	return res, nil
}

func (h *Hasher) reportProgress() {
	if h.OnProgress == nil {
		return
	}
	h.mutex.Lock()
	progress := Progress{Done: h.done, Total: h.total}
	h.mutex.Unlock()
	h.OnProgress(progress)
}

// readPieces streams the files into pieceSize chunks
func (h *Hasher) readPieces(ctx context.Context, root string, files []File, pieceSize int64, out chan<- piece) error {
	buf := make([]byte, 0, pieceSize)
	index := 0

	send := func() error {
		select {
		case out <- piece{index: index, data: buf}:
		case <-ctx.Done():
			return ctx.Err()
		}
		index++
		buf = make([]byte, 0, pieceSize)
		return nil
	}

	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file.Path))
		f, err := os.Open(path)
		if err != nil {
			h.Log.Error(err)
			return errors.New(i18n.Arg(h.Tr.CantOpen, path))
		}

		// only the declared length is hashed so the pieces agree with the torrent
		r := io.LimitReader(f, file.Size)
		var read int64
		for {
			n, err := io.ReadFull(r, buf[len(buf):cap(buf)])
			buf = buf[:len(buf)+n]
			read += int64(n)
			if len(buf) == cap(buf) {
				if sendErr := send(); sendErr != nil {
					f.Close()
					return sendErr
				}
			}
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				f.Close()
				h.Log.Error(err)
				return errors.New(i18n.Arg(h.Tr.CantReadFrom, path))
			}
		}
		f.Close()

		if read < file.Size {
			h.Log.Errorf("%s has %d bytes, expected %d", path, read, file.Size)
			return errors.New(i18n.Arg(h.Tr.CantReadFrom, path))
		}
	}

	if len(buf) > 0 {
		return send()
	}
	return nil
}
