package msg

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/internal/errors"
)

// attachmentManifest maps attachment storages to references without
// materializing any bytes. DataID is the attachment's storage index,
// usable against AttachmentData on the same raw buffer.
func attachmentManifest(rawMsg *rawMessage) []dto.EmailAttachmentRef {
	if len(rawMsg.attachments) == 0 {
		return nil
	}

	refs := make([]dto.EmailAttachmentRef, 0, len(rawMsg.attachments))
	for _, att := range rawMsg.attachments {
		name := strings.TrimSpace(att.strings[propAttachLongName])
		if name == "" {
			name = strings.TrimSpace(att.strings[propAttachShortName])
		}
		if name == "" {
			name = "unknown"
		}
		refs = append(refs, dto.EmailAttachmentRef{
			FileName:      name,
			ContentLength: att.dataSize,
			DataID:        att.index,
		})
	}
	return refs
}

// AttachmentData re-walks the raw buffer and returns the bytes of the
// attachment whose storage index is dataID. Attachments are fetched on
// demand so viewing a message never materializes its attachments.
func (p *msgParser) AttachmentData(raw []byte, dataID int) ([]byte, error) {
	doc, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.ErrAttachmentNotFound
	}

	wantStorage := fmt.Sprintf("%s%08X", attachPrefix, dataID)
	wantStream := fmt.Sprintf("%s%04X%04X", substgPrefix, propAttachData, ptypeBinary)

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		path := entry.Path
		if len(path) > 0 && path[0] == rootEntryName {
			path = path[1:]
		}
		if len(path) != 1 || path[0] != wantStorage || entry.Name != wantStream {
			continue
		}
		data := make([]byte, entry.Size)
		if _, err := io.ReadFull(entry, data); err != nil {
			return nil, errors.ErrAttachmentNotFound
		}
		return data, nil
	}

	return nil, errors.ErrAttachmentNotFound
}
