// Package filewatch detects changed files by comparing content digests.
package filewatch

import (
	"io/fs"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// missing marks a tracked file that could not be read.
const missing uint64 = 0

// Poller remembers one digest per tracked path. It is not safe for
// concurrent use; the frame loop owns it.
type Poller struct {
	fsys    fs.FS
	digests map[string]uint64
}

func NewPoller(fsys fs.FS) *Poller {
	return &Poller{fsys: fsys, digests: make(map[string]uint64)}
}

// Track starts watching path. The current content becomes the baseline, so
// tracking never reports a change by itself.
func (p *Poller) Track(path string) {
	if _, ok := p.digests[path]; ok {
		return
	}
	p.digests[path] = p.digest(path)
}

// Tracked lists watched paths in lexical order.
func (p *Poller) Tracked() []string {
	out := make([]string, 0, len(p.digests))
	for path := range p.digests {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Poll re-reads every tracked file and returns those whose digest changed
// since the previous poll, sorted. Deleting a file counts as a change once.
func (p *Poller) Poll() []string {
	var changed []string
	for path, old := range p.digests {
		cur := p.digest(path)
		if cur != old {
			p.digests[path] = cur
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

// Sync tracks every path in paths and stops tracking the rest.
func (p *Poller) Sync(paths []string) {
	keep := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		keep[path] = struct{}{}
		p.Track(path)
	}
	for path := range p.digests {
		if _, ok := keep[path]; !ok {
			p.untrack(path)
		}
	}
}

func (p *Poller) digest(path string) uint64 {
	data, err := fs.ReadFile(p.fsys, path)
	if err != nil {
		return missing
	}
	sum := xxhash.Sum64(data)
	if sum == missing {
		sum++
	}
	return sum
}

func (p *Poller) untrack(path string) {
	delete(p.digests, path)
}
