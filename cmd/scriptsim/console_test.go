package main

import (
	"bytes"
	"testing"

	"github.com/ark-network/scriptsim/internal/core/application"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()
	svc, err := application.NewService(1, true, nil)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	c, err := newConsole(svc, out)
	require.NoError(t, err)
	t.Cleanup(c.close)
	return c, out
}

func TestConsoleArithmetic(t *testing.T) {
	c, out := newTestConsole(t)

	require.NoError(t, c.handle("push 03 05"))
	require.NoError(t, c.handle("op add"))
	require.Contains(t, out.String(), "last operation: OP_ADD")
	require.Contains(t, out.String(), "0: 0x08 (8)")

	out.Reset()
	require.NoError(t, c.handle("OP_DUP"))
	require.NoError(t, c.handle("OP_EQUAL"))
	require.Contains(t, out.String(), "0: true")

	out.Reset()
	require.NoError(t, c.handle("pop"))
	require.Contains(t, out.String(), "popped true")
	require.Contains(t, out.String(), "stack is empty")
}

func TestConsoleCheckSig(t *testing.T) {
	c, out := newTestConsole(t)

	require.NoError(t, c.handle("example"))
	require.True(t, c.waitingDigest)
	require.Contains(t, out.String(), "example digest: "+application.ExampleDigest)

	require.Error(t, c.handle("digest 00"))
	require.True(t, c.waitingDigest)

	out.Reset()
	require.NoError(t, c.handle("digest "+application.ExampleDigest))
	require.False(t, c.waitingDigest)
	require.Contains(t, out.String(), "last operation: OP_CHECKSIG")
	require.Contains(t, out.String(), "0: true")

	require.NoError(t, c.handle("example"))
	require.NoError(t, c.handle("cancel"))
	require.False(t, c.waitingDigest)
	require.Error(t, c.handle("digest "+application.ExampleDigest))
}

func TestConsoleCommands(t *testing.T) {
	c, out := newTestConsole(t)

	require.NoError(t, c.handle(""))
	require.Empty(t, out.String())

	require.NoError(t, c.handle("help"))
	require.Contains(t, out.String(), "Commands:")

	out.Reset()
	require.NoError(t, c.handle("parse 76a90088ac"))
	require.Contains(t, out.String(), "OP_HASH160")
	require.Contains(t, out.String(), "OP_EQUALVERIFY")

	out.Reset()
	require.NoError(t, c.handle("op hash160"))
	require.Contains(t, out.String(), "Error: Insufficient items")

	out.Reset()
	require.NoError(t, c.handle("reset"))
	require.Contains(t, out.String(), "stack is empty")

	require.Error(t, c.handle("push"))
	require.Error(t, c.handle("push xyz"))
	require.Error(t, c.handle("op"))
	require.Error(t, c.handle("OP_RETURN"))
	require.Error(t, c.handle("pop"))
	require.Error(t, c.handle("frobnicate"))

	require.ErrorIs(t, c.handle("exit"), errExitConsole)
	require.ErrorIs(t, c.handle("QUIT"), errExitConsole)
}

func TestParseCommandArgs(t *testing.T) {
	cmds, err := parseCommandArgs([]string{"op_dup", "OP_HASH160", "0xabcd", "OP_EQUAL"})
	require.NoError(t, err)
	require.Len(t, cmds, 4)

	data, ok := cmds[2].Data()
	require.True(t, ok)
	require.Equal(t, []byte{0xab, 0xcd}, data)

	_, err = parseCommandArgs([]string{"OP_NOPE"})
	require.Error(t, err)

	_, err = parseCommandArgs([]string{"abc"})
	require.Error(t, err)
}

func TestDecodeDigest(t *testing.T) {
	digest, err := decodeDigest(application.ExampleDigest)
	require.NoError(t, err)
	require.Len(t, digest, 32)

	_, err = decodeDigest("00")
	require.Error(t, err)

	_, err = decodeDigest("zz")
	require.Error(t, err)
}
