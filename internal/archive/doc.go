// Package archive builds compressed source archives from git treeishes.
//
// The simple case streams git's native tar export straight through a
// compressor into the output file. When the tree binds submodules, each
// submodule is a separate repository with independent history and cannot
// be exported in the same pass, so the assembler exports the top-level
// tree to an uncompressed intermediate tar, appends one intermediate
// archive per submodule, and compresses the completed tar last.
//
// Compression is in-process for gzip and zstd (klauspost/compress) and
// shells out to an arbitrary compressor binary for everything else.
package archive
