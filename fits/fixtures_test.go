package fits

import (
	"fmt"

	"github.com/robert-malhotra/go-fits/internal/binary"
)

// card formats a fixed-format valued record.
func card(keyword string, value any) string {
	return fmt.Sprintf("%-8s= %20v", keyword, value)
}

// hdu is a synthetic unit: header cards (END is appended) and raw data.
type hdu struct {
	cards []string
	data  []byte
}

// build lays out units with block padding. The last unit's data is padded
// too unless unpadded is set.
func build(unpadded bool, units ...hdu) []byte {
	w := binary.NewWriter()
	for i, u := range units {
		for _, c := range u.cards {
			w.WriteCard(c, 80)
		}
		w.WriteCard("END", 80)
		w.Pad(BlockSize, ' ')

		w.WriteBytes(u.data)
		if unpadded && i == len(units)-1 {
			break
		}
		w.Pad(BlockSize, 0)
	}
	return w.Bytes()
}

func primaryNoData() hdu {
	return hdu{cards: []string{
		card("SIMPLE", "T"),
		card("BITPIX", 8),
		card("NAXIS", 0),
		card("EXTEND", "T"),
	}}
}

func imageExt(bitpix int, axes []int, data []byte, extra ...string) hdu {
	cards := []string{
		card("XTENSION", "'IMAGE   '"),
		card("BITPIX", bitpix),
		card("NAXIS", len(axes)),
	}
	for i, a := range axes {
		cards = append(cards, card(fmt.Sprintf("NAXIS%d", i+1), a))
	}
	cards = append(cards, card("PCOUNT", 0), card("GCOUNT", 1))
	cards = append(cards, extra...)
	return hdu{cards: cards, data: data}
}

// twoUnitFile is a primary HDU without data followed by a 2x2 BITPIX 8 image.
func twoUnitFile() []byte {
	return build(false, primaryNoData(), imageExt(8, []int{2, 2}, []byte{10, 20, 30, 40}))
}
