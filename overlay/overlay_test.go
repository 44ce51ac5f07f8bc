package overlay

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storemask/storemask/errdefs"
	"github.com/storemask/storemask/system/systemtest"
)

func TestNewViewLayout(t *testing.T) {
	v := NewView("/var/lib/container-stores", "web")
	assert.Equal(t, "web", v.Name)
	assert.Equal(t, "/var/lib/container-stores/web", v.Dir)
	assert.Equal(t, "/var/lib/container-stores/web/upper", v.MaskDir)
	assert.Equal(t, "/var/lib/container-stores/web/merged", v.MergedDir)
	assert.Equal(t, "/var/lib/container-stores/web/work", v.WorkDir)
}

func TestEnsureDirs(t *testing.T) {
	root, err := ioutil.TempDir("", "overlay-")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	v := NewView(root, "web")
	require.NoError(t, v.EnsureDirs())
	for _, dir := range []string{v.MaskDir, v.MergedDir, v.WorkDir} {
		fi, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, fi.IsDir(), dir)
	}
}

func TestEnsureDirsReopensMaskDir(t *testing.T) {
	root, err := ioutil.TempDir("", "overlay-")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	v := NewView(root, "web")
	require.NoError(t, v.EnsureDirs())
	require.NoError(t, v.RestrictMaskDir())

	fi, err := os.Stat(v.MaskDir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0111), fi.Mode().Perm())

	require.NoError(t, v.EnsureDirs())
	fi, err = os.Stat(v.MaskDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), fi.Mode().Perm())
}

func TestRestrictMaskDir(t *testing.T) {
	root, err := ioutil.TempDir("", "overlay-")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	v := NewView(root, "web")
	require.NoError(t, v.EnsureDirs())
	require.NoError(t, v.RestrictMaskDir())

	fi, err := os.Stat(v.MaskDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0111), fi.Mode().Perm())
}

func TestRestrictMaskDirMissing(t *testing.T) {
	root, err := ioutil.TempDir("", "overlay-")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	v := NewView(root, "web")
	err = v.RestrictMaskDir()
	require.Error(t, err)
	assert.True(t, errdefs.IsIo(err))
}

func TestMountedScansTable(t *testing.T) {
	v := NewView("/views", "web")

	fake := &systemtest.Fake{MountTableOut: []byte(
		"proc on /proc type proc (rw,nosuid)\n" +
			"overlay on /views/web/merged type overlay (ro,relatime,lowerdir=/views/web/upper:/nix/store)\n",
	)}
	mounted, err := v.Mounted(fake)
	require.NoError(t, err)
	assert.True(t, mounted)

	fake = &systemtest.Fake{MountTableOut: []byte("proc on /proc type proc (rw,nosuid)\n")}
	mounted, err = v.Mounted(fake)
	require.NoError(t, err)
	assert.False(t, mounted)
}

func TestMountedTableFailure(t *testing.T) {
	v := NewView("/views", "web")
	fake := &systemtest.Fake{MountTableErr: errors.Wrap(errdefs.ErrMount, "mount exited 1")}
	_, err := v.Mounted(fake)
	require.Error(t, err)
	assert.True(t, errdefs.IsMount(err))
}

func TestMountAssemblesLowerChain(t *testing.T) {
	v := NewView("/views", "web")
	fake := &systemtest.Fake{}
	require.NoError(t, v.Mount(fake, "/nix/store"))
	assert.Equal(t, []string{"mount lowerdir=/views/web/upper:/nix/store /views/web/merged"}, fake.Calls())
}

func TestUnmount(t *testing.T) {
	v := NewView("/views", "web")
	fake := &systemtest.Fake{}
	require.NoError(t, v.Unmount(fake))
	assert.Equal(t, []string{"umount /views/web/merged"}, fake.Calls())
}
