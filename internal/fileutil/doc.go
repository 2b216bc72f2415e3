// Package fileutil reads text files as line sequences and collects source
// files from directory trees.
//
// Lines keep their terminators, so JoinLines(ReadLines(p)) reproduces the
// original bytes exactly. Only "\n" ends a line; a "\r" before it stays part
// of the line.
//
//	lines, err := fileutil.ReadLines("pages/Profile.tsx")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(lines))
//
// Directory expansion walks a tree in lexical order:
//
//	files, err := fileutil.ScanDirectory("src", fileutil.ScanOptions{
//	    Extensions:  []string{".tsx", ".ts"},
//	    ExcludeDirs: []string{"node_modules"},
//	})
package fileutil
