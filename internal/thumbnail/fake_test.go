package thumbnail

import (
	"fmt"

	"github.com/ironsheep/wand-thumbnail/internal/magick"
)

// fakeAPI records every native call and lets tests script failures.
type fakeAPI struct {
	calls []string

	frames      int
	readOK      bool
	writeOK     bool
	failResize  int // frame index whose resize fails, -1 for none
	warnResize  int // frame index whose resize leaves a warning, -1 for none
	message     string
	severity    magick.ExceptionType
	genesis     bool
	nextWand    magick.Wand
	live        map[magick.Wand]bool
	cursor      int
	loaded      int
	resized     []int
	buffers     map[magick.Buffer]string
	nextBuffer  magick.Buffer
	excMessage  string
	excSeverity magick.ExceptionType
}

func newFakeAPI(frames int) *fakeAPI {
	return &fakeAPI{
		frames:     frames,
		readOK:     true,
		writeOK:    true,
		failResize: -1,
		warnResize: -1,
		live:       make(map[magick.Wand]bool),
		buffers:    make(map[magick.Buffer]string),
	}
}

func (f *fakeAPI) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) index(name string) int {
	for i, c := range f.calls {
		if c == name {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) fail() {
	f.excMessage = f.message
	f.excSeverity = f.severity
}

func (f *fakeAPI) Genesis() {
	f.record("Genesis")
	f.genesis = true
}

func (f *fakeAPI) Terminus() {
	f.record("Terminus")
	if !f.genesis {
		panic("Terminus without Genesis")
	}
	f.genesis = false
}

func (f *fakeAPI) NewWand() magick.Wand {
	f.record("NewWand")
	if !f.genesis {
		panic("NewWand before Genesis")
	}
	f.nextWand++
	f.live[f.nextWand] = true
	return f.nextWand
}

func (f *fakeAPI) DestroyWand(w magick.Wand) {
	f.record("DestroyWand")
	if !f.live[w] {
		panic("DestroyWand on dead wand")
	}
	delete(f.live, w)
}

func (f *fakeAPI) ReadImage(w magick.Wand, path string) bool {
	f.record("ReadImage")
	if !f.readOK {
		f.fail()
		return false
	}
	f.loaded = f.frames
	return true
}

func (f *fakeAPI) ResetIterator(w magick.Wand) {
	f.record("ResetIterator")
	f.cursor = -1
}

func (f *fakeAPI) NextImage(w magick.Wand) bool {
	if f.cursor+1 >= f.loaded {
		return false
	}
	f.cursor++
	return true
}

func (f *fakeAPI) ResizeImage(w magick.Wand, columns, rows uint, filter magick.FilterType, blur float64) bool {
	f.record("ResizeImage")
	if columns != Width || rows != Height || filter != magick.LanczosFilter || blur != 1.0 {
		panic("unexpected resize geometry")
	}
	if f.cursor == f.failResize {
		f.fail()
		return false
	}
	if f.cursor == f.warnResize {
		f.excMessage = "resize warning"
		f.excSeverity = magick.ImageWarning
	}
	f.resized = append(f.resized, f.cursor)
	return true
}

func (f *fakeAPI) WriteImages(w magick.Wand, path string, adjoin bool) bool {
	f.record("WriteImages")
	if !adjoin {
		panic("WriteImages without adjoin")
	}
	if !f.writeOK {
		f.fail()
		return false
	}
	return true
}

func (f *fakeAPI) NumberImages(w magick.Wand) int {
	f.record("NumberImages")
	return f.loaded
}

func (f *fakeAPI) ImageSize(w magick.Wand) (uint, uint) {
	f.record("ImageSize")
	return Width, Height
}

func (f *fakeAPI) GetException(w magick.Wand) (magick.Buffer, magick.ExceptionType) {
	f.record("GetException")
	if !f.live[w] {
		panic("GetException on dead wand")
	}
	f.nextBuffer++
	f.buffers[f.nextBuffer] = f.excMessage
	return f.nextBuffer, f.excSeverity
}

func (f *fakeAPI) ClearException(w magick.Wand) {
	f.excMessage = ""
	f.excSeverity = magick.UndefinedException
}

func (f *fakeAPI) BufferString(b magick.Buffer) string {
	return f.buffers[b]
}

func (f *fakeAPI) RelinquishMemory(b magick.Buffer) {
	f.record("RelinquishMemory")
	delete(f.buffers, b)
}
