package stub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDriverWriteRecordsTxLog(t *testing.T) {
	d := New()
	n, err := d.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, [][]byte{{1, 2, 3}}, d.TxLog())
}

func TestDriverReadAvailableDrainsInjectedBytes(t *testing.T) {
	d := New()
	d.InjectRx([]byte{9, 8, 7})

	buf := make([]byte, 2)
	n, err := d.ReadAvailable(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{9, 8}, buf[:n])

	n, err = d.ReadAvailable(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, []byte{7}, buf[:n])

	n, err = d.ReadAvailable(buf)
	require.NoError(t, err)
	require.Zero(t, n)
}
