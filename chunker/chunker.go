package chunker

import (
	"fmt"
	"strings"

	"localrag/types"

	"github.com/google/uuid"
)

// chunkNamespace seeds uuid.NewSHA1 so that the same file name and
// chunk index always map to the same ID. Re-ingesting a document
// therefore overwrites its previous chunks instead of duplicating them.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("localrag/chunks"))

// DocumentID derives the stable document identifier from the uploaded
// file name.
func DocumentID(fileName string) uuid.UUID {
	return uuid.NewSHA1(chunkNamespace, []byte(fileName))
}

// ChunkID derives the stable identifier for chunk number index of the
// named file.
func ChunkID(fileName string, index int) uuid.UUID {
	return uuid.NewSHA1(chunkNamespace, []byte(fmt.Sprintf("%s:%d", fileName, index)))
}

// Split joins the extracted pages and cuts them into word windows of
// size words, each window sharing overlap words with the previous one.
// Empty windows are skipped; the embedding is left for the caller to
// fill in.
func Split(fileName string, pages []string, size, overlap int) []types.Chunk {
	if size <= 0 {
		size = 400
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	words := strings.Fields(strings.Join(pages, "\n"))
	title := Title(fileName)
	docID := DocumentID(fileName)

	var chunks []types.Chunk
	index := 0
	for i := 0; i < len(words); i += size - overlap {
		end := i + size
		if end > len(words) {
			end = len(words)
		}

		content := strings.Join(words[i:end], " ")
		if strings.TrimSpace(content) == "" {
			continue
		}

		chunks = append(chunks, types.Chunk{
			ID:      ChunkID(fileName, index),
			DocID:   docID,
			Title:   title,
			Index:   index,
			Content: content,
		})
		index++

		if end == len(words) {
			break
		}
	}
	return chunks
}

// Title turns a file name into a readable document title.
func Title(fileName string) string {
	name := fileName
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = name[:len(name)-4]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
