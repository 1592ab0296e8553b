package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"fluentkit/internal/driver"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса

var inlineSeeds = []string{
	"",
	"hello = Hello\n",
	"-term = T\n    .attr = A\n",
	"key = { $n ->\n    [one] One\n   *[other] Many\n}\n",
	"# c\n## g\n### r\n",
	"key = { NUMBER($n, style: \"percent\") }\n",
	"key = { \"\\u00E9\\\\\" } { -brand(case: \"gen\") }\n",
	"bad = }\n",
	"key = { $x ->\n*[",
	"key =\n    multi\n    line\n        indented\n",
	"key = {{{{{ }}}}}\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	f.Add([]byte(driver.SampleFTL))
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ftl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ftl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
