package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
)

func TestResolveNode(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "wsvd")
	if err != nil {
		t.Fatalf("TestResolveNode: Failed creating a temporary directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	nodeFlags := &NodeFlags{}
	parser := flags.NewParser(nodeFlags, flags.HelpFlag)
	_, err = parser.ParseArgs([]string{"--appdir", tmpDir, "--cachesize", "32"})
	if err != nil {
		t.Fatalf("TestResolveNode: ParseArgs unexpectedly failed: %v", err)
	}
	err = nodeFlags.ResolveNode()
	if err != nil {
		t.Fatalf("TestResolveNode: ResolveNode unexpectedly failed: %v", err)
	}
	if nodeFlags.CacheSizeMiB != 32 || nodeFlags.LogLevel != defaultLogLevel {
		t.Fatalf("TestResolveNode: unexpected flags %+v", nodeFlags)
	}
	for _, dir := range []string{nodeFlags.DataDir(), nodeFlags.LogDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("TestResolveNode: directory %s was not created", dir)
		}
	}
	if nodeFlags.DataDir() != filepath.Join(tmpDir, defaultDataDirName) {
		t.Fatalf("TestResolveNode: unexpected data directory %s", nodeFlags.DataDir())
	}
}

func TestResolveNodeInvalid(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "wsvd")
	if err != nil {
		t.Fatalf("TestResolveNodeInvalid: Failed creating a temporary directory: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	tests := []*NodeFlags{
		{AppDir: tmpDir, CacheSizeMiB: -1},
		{AppDir: tmpDir, LogLevel: "loud"},
	}
	for i, nodeFlags := range tests {
		err := nodeFlags.ResolveNode()
		if err == nil {
			t.Errorf("TestResolveNodeInvalid: test #%d: ResolveNode unexpectedly succeeded", i)
		}
	}
}
