package msg

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

// MAPI property ids observed in .msg files. String-valued properties are
// carried in their own __substg1.0_ streams; fixed-width values live in
// the shared __properties_version1.0 stream.
const (
	propSubject             = 0x0037
	propClientSubmitTime    = 0x0039
	propTransportHeaders    = 0x007D
	propSenderName          = 0x0C1A
	propSenderEmail         = 0x0C1F
	propRecipientType       = 0x0C15
	propMessageDeliveryTime = 0x0E06
	propBody                = 0x1000
	propHTMLBody            = 0x1013
	propDisplayName         = 0x3001
	propEmailAddress        = 0x3003
	propCreationTime        = 0x3007
	propAttachData          = 0x3701
	propAttachShortName     = 0x3704
	propAttachLongName      = 0x3707
	propSenderSMTP          = 0x5D01
	propRecipSMTP           = 0x39FE
)

// MAPI property value encodings, taken from the stream-name suffix.
const (
	ptypeString8 = 0x001E
	ptypeUnicode = 0x001F
	ptypeBinary  = 0x0102
)

const (
	substgPrefix     = "__substg1.0_"
	propsStreamName  = "__properties_version1.0"
	recipPrefix      = "__recip_version1.0_#"
	attachPrefix     = "__attach_version1.0_#"
	rootEntryName    = "Root Entry"
	propsHeaderTop   = 32
	propsHeaderChild = 8
)

// rawMessage is the undigested property view of one message: string
// properties by id, fixed-width values by id, and the per-recipient and
// per-attachment property sets in storage order.
type rawMessage struct {
	strings     map[uint16]string
	fixed       map[uint16][]byte
	recipients  []*rawPropertySet
	attachments []*rawPropertySet
}

// rawPropertySet holds the properties of one recipient or attachment
// storage. dataSize is only meaningful for attachments.
type rawPropertySet struct {
	index    int
	strings  map[uint16]string
	fixed    map[uint16][]byte
	dataSize int
}

func newRawPropertySet(index int) *rawPropertySet {
	return &rawPropertySet{
		index:   index,
		strings: make(map[uint16]string),
		fixed:   make(map[uint16][]byte),
	}
}

// readRaw walks the compound-document directory and collects every
// property relevant to field resolution. Streams nested deeper than one
// storage (embedded messages) are ignored.
func readRaw(data []byte) (*rawMessage, error) {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	msg := &rawMessage{
		strings: make(map[uint16]string),
		fixed:   make(map[uint16][]byte),
	}
	recipients := make(map[int]*rawPropertySet)
	attachments := make(map[int]*rawPropertySet)

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		path := entry.Path
		if len(path) > 0 && path[0] == rootEntryName {
			path = path[1:]
		}

		switch {
		case len(path) == 0:
			readMessageEntry(msg, entry)
		case len(path) == 1 && strings.HasPrefix(path[0], recipPrefix):
			idx, ok := storageIndex(path[0], recipPrefix)
			if !ok {
				continue
			}
			set, exists := recipients[idx]
			if !exists {
				set = newRawPropertySet(idx)
				recipients[idx] = set
			}
			readChildEntry(set, entry)
		case len(path) == 1 && strings.HasPrefix(path[0], attachPrefix):
			idx, ok := storageIndex(path[0], attachPrefix)
			if !ok {
				continue
			}
			set, exists := attachments[idx]
			if !exists {
				set = newRawPropertySet(idx)
				attachments[idx] = set
			}
			readChildEntry(set, entry)
		}
	}

	msg.recipients = sortPropertySets(recipients)
	msg.attachments = sortPropertySets(attachments)
	return msg, nil
}

func readMessageEntry(msg *rawMessage, entry *mscfb.File) {
	if entry.Name == propsStreamName {
		parseFixedProperties(msg.fixed, readStream(entry), propsHeaderTop)
		return
	}
	id, ptype, ok := parseSubstgName(entry.Name)
	if !ok {
		return
	}
	if value, ok := decodeStringProperty(ptype, readStream(entry)); ok {
		msg.strings[id] = value
	}
}

func readChildEntry(set *rawPropertySet, entry *mscfb.File) {
	if entry.Name == propsStreamName {
		parseFixedProperties(set.fixed, readStream(entry), propsHeaderChild)
		return
	}
	id, ptype, ok := parseSubstgName(entry.Name)
	if !ok {
		return
	}
	if id == propAttachData && ptype == ptypeBinary {
		// manifest needs the size only; bytes are fetched on demand
		set.dataSize = int(entry.Size)
		return
	}
	if value, ok := decodeStringProperty(ptype, readStream(entry)); ok {
		set.strings[id] = value
	}
}

// parseSubstgName splits a "__substg1.0_XXXXYYYY" stream name into
// property id and property type.
func parseSubstgName(name string) (uint16, uint16, bool) {
	if !strings.HasPrefix(name, substgPrefix) || len(name) != len(substgPrefix)+8 {
		return 0, 0, false
	}
	suffix := name[len(substgPrefix):]
	id, err := strconv.ParseUint(suffix[:4], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	ptype, err := strconv.ParseUint(suffix[4:], 16, 16)
	if err != nil {
		return 0, 0, false
	}
	return uint16(id), uint16(ptype), true
}

func storageIndex(name, prefix string) (int, bool) {
	idx, err := strconv.ParseUint(strings.TrimPrefix(name, prefix), 16, 32)
	if err != nil {
		return 0, false
	}
	return int(idx), true
}

func readStream(entry *mscfb.File) []byte {
	if entry.Size <= 0 {
		return nil
	}
	buf := make([]byte, entry.Size)
	n, err := io.ReadFull(entry, buf)
	if err != nil && n == 0 {
		return nil
	}
	return buf[:n]
}

// decodeStringProperty turns a substream payload into a Go string. HTML
// bodies are stored as PT_BINARY but hold text, so binary payloads are
// decoded as raw bytes.
func decodeStringProperty(ptype uint16, data []byte) (string, bool) {
	switch ptype {
	case ptypeUnicode:
		return decodeUTF16LE(data), true
	case ptypeString8, ptypeBinary:
		return string(data), true
	}
	return "", false
}

func decodeUTF16LE(data []byte) string {
	if len(data) < 2 {
		return ""
	}
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return string(utf16.Decode(units))
}

// parseFixedProperties walks the 16-byte records of a
// __properties_version1.0 stream, keeping the 8-byte value of every
// fixed-width property. headerLen is 32 for the message storage and 8
// for recipient and attachment storages.
func parseFixedProperties(into map[uint16][]byte, data []byte, headerLen int) {
	if len(data) <= headerLen {
		return
	}
	records := data[headerLen:]
	for off := 0; off+16 <= len(records); off += 16 {
		tag := binary.LittleEndian.Uint32(records[off:])
		id := uint16(tag >> 16)
		if id == 0 {
			continue
		}
		value := make([]byte, 8)
		copy(value, records[off+8:off+16])
		into[id] = value
	}
}

// filetimeToTime converts a Windows FILETIME value (100ns intervals
// since 1601-01-01 UTC) to a Go time. The zero value maps to the zero
// time.
func filetimeToTime(value []byte) time.Time {
	if len(value) < 8 {
		return time.Time{}
	}
	ft := binary.LittleEndian.Uint64(value)
	if ft == 0 {
		return time.Time{}
	}
	const epochDelta = 116444736000000000 // 1601-01-01 to 1970-01-01 in 100ns
	if ft < epochDelta {
		return time.Time{}
	}
	nsec := int64(ft-epochDelta) * 100
	return time.Unix(0, nsec).UTC()
}

func sortPropertySets(sets map[int]*rawPropertySet) []*rawPropertySet {
	ordered := make([]*rawPropertySet, 0, len(sets))
	for _, set := range sets {
		ordered = append(ordered, set)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].index < ordered[j].index })
	return ordered
}
