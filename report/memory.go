/*
 * memory.go, part of gopops.
 *
 * Copyright 2024 The gopops authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package report

import (
	"context"
	"sort"
	"sync"
)

//MemoryStore keeps frames in memory.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	frames      map[string][]Frame
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.frames = make(map[string][]Frame)
	return nil
}

func (s *MemoryStore) SaveFrame(_ context.Context, f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return Error{"Store is not initialized", []string{"MemoryStore.SaveFrame"}, true}
	}
	f.Residues = append([]ResidueValues(nil), f.Residues...)
	frames := s.frames[f.Run]
	for i, v := range frames {
		if v.Index == f.Index {
			frames[i] = f
			return nil
		}
	}
	s.frames[f.Run] = append(frames, f)
	return nil
}

func (s *MemoryStore) Frames(_ context.Context, run string) ([]Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, Error{"Store is not initialized", []string{"MemoryStore.Frames"}, true}
	}
	ret := append([]Frame(nil), s.frames[run]...)
	sort.Slice(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret, nil
}

func (s *MemoryStore) Close() error { return nil }
