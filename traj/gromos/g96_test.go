/*
 * g96_test.go, part of gopops.
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

package gromos

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gopops"
	v3 "github.com/rmera/gopops/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, name string, ats int) []*v3.Matrix {
	t.Helper()
	traj, err := New(name, ats)
	require.NoError(t, err)
	var frames []*v3.Matrix
	for {
		coords := v3.Zeros(traj.Len())
		err := traj.Next(coords)
		if err != nil {
			_, ok := err.(chem.LastFrameError)
			require.True(t, ok, err.Error())
			break
		}
		frames = append(frames, coords)
	}
	assert.False(t, traj.Readable())
	return frames
}

func TestG96(t *testing.T) {
	frames := readAll(t, "testdata/small.g96", 4)
	require.Len(t, frames, 2)
	assert.InDelta(t, 1.0, frames[0].At(0, 0), 1e-9)
	assert.InDelta(t, 5.5, frames[0].At(3, 0), 1e-9)
	assert.InDelta(t, 3.0, frames[0].At(3, 2), 1e-9)
	assert.InDelta(t, 1.1, frames[1].At(0, 0), 1e-9)
	assert.InDelta(t, 1.5, frames[1].Dist(0, 1), 1e-9)
}

func TestTimeAndSkip(t *testing.T) {
	traj, err := New("testdata/small.g96", 4)
	require.NoError(t, err)
	require.NoError(t, traj.Next(nil))
	step, time := traj.Time()
	assert.Equal(t, 0, step)
	assert.Equal(t, 0.0, time)
	coords := v3.Zeros(4)
	require.NoError(t, traj.Next(coords))
	step, time = traj.Time()
	assert.Equal(t, 500, step)
	assert.Equal(t, 1.0, time)
	assert.InDelta(t, 5.6, coords.At(3, 0), 1e-9)
	err = traj.Next(coords)
	_, ok := err.(chem.LastFrameError)
	assert.True(t, ok)
	//reading a closed trajectory
	assert.Error(t, traj.Next(coords))
}

func TestWrongFrames(t *testing.T) {
	traj, err := New("testdata/small.g96", 7)
	require.NoError(t, err)
	err = traj.Next(v3.Zeros(7))
	require.Error(t, err)
	_, ok := err.(chem.LastFrameError)
	assert.False(t, ok)
	terr, ok := err.(chem.TrajError)
	require.True(t, ok)
	assert.Equal(t, "GROMOS96", terr.Format())
	assert.True(t, terr.Critical())

	traj, err = New("testdata/small.g96", 4)
	require.NoError(t, err)
	assert.Error(t, traj.Next(v3.Zeros(3)))

	_, err = New("testdata/nothere.g96", 4)
	assert.Error(t, err)
	_, err = New("testdata/small.g96", 0)
	assert.Error(t, err)
}

func TestCompressed(t *testing.T) {
	for _, ext := range []string{".gz", ".zst"} {
		name := filepath.Join(t.TempDir(), "small.g96"+ext)
		in, err := os.Open("testdata/small.g96")
		require.NoError(t, err)
		out, err := chem.Create(name)
		require.NoError(t, err)
		_, err = io.Copy(out, in)
		require.NoError(t, err)
		require.NoError(t, out.Close())
		in.Close()
		frames := readAll(t, name, 4)
		assert.Len(t, frames, 2, ext)
		assert.InDelta(t, 4.1, frames[1].At(2, 0), 1e-9, ext)
	}
}
