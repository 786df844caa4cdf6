//go:build circuitplay_bluefruit

package main

import (
	"bytes"
	"errors"
	"machine"

	"illo/core"
)

// Config blobs live at the start of the flash data area behind a magic,
// a length and a checksum, so a blank or half-written region reads back
// as no config instead of as garbage JSON.
var flashMagic = [4]byte{'I', 'L', 'C', '1'}

const (
	flashHeader = 8 // magic + little-endian length + little-endian crc
	maxBlob     = 1024
)

type FlashStore struct{}

func NewFlashStore() *FlashStore { return &FlashStore{} }

func (*FlashStore) Load() ([]byte, error) {
	var header [flashHeader]byte
	if _, err := machine.Flash.ReadAt(header[:], 0); err != nil {
		return nil, err
	}
	if !bytes.Equal(header[:4], flashMagic[:]) {
		return nil, core.ErrNoConfig
	}
	n := int(header[4]) | int(header[5])<<8
	if n == 0 || n > maxBlob {
		return nil, core.ErrNoConfig
	}
	crc := uint16(header[6]) | uint16(header[7])<<8
	blob := make([]byte, n)
	if _, err := machine.Flash.ReadAt(blob, flashHeader); err != nil {
		return nil, err
	}
	if core.CRC16(blob) != crc {
		core.Logln("[BOOT] stored config failed its checksum")
		return nil, core.ErrNoConfig
	}
	return blob, nil
}

func (*FlashStore) Save(data []byte) error {
	if len(data) > maxBlob {
		return errors.New("config too large")
	}
	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return err
	}
	crc := core.CRC16(data)
	buf := make([]byte, flashHeader+len(data))
	copy(buf[:4], flashMagic[:])
	buf[4] = byte(len(data))
	buf[5] = byte(len(data) >> 8)
	buf[6] = byte(crc)
	buf[7] = byte(crc >> 8)
	copy(buf[flashHeader:], data)
	// Writes must land on the write-block grain.
	if rem := len(buf) % int(machine.Flash.WriteBlockSize()); rem != 0 {
		pad := int(machine.Flash.WriteBlockSize()) - rem
		for i := 0; i < pad; i++ {
			buf = append(buf, 0xff)
		}
	}
	_, err := machine.Flash.WriteAt(buf, 0)
	return err
}
