package chart

// Notation selects the dental numbering system used for display.
type Notation string

const (
	NotationFDI Notation = "FDI"
	NotationUNS Notation = "UNS"
)

// ToothNotation is one chart position rendered in a numbering system.
type ToothNotation struct {
	Label string `json:"label"`
	Image string `json:"image"`
}

// notationChart lists the 32 adult positions in chart display order, with
// the FDI World Dental Federation label, the Universal Numbering System
// label, and the tooth image used by the front-end.
// See https://en.wikipedia.org/wiki/Dental_notation
var notationChart = []struct {
	labelFDI string
	labelUNS string
	image    string
}{
	{"1.8", "1", "molar.png"},
	{"1.7", "2", "molar.png"},
	{"1.6", "3", "molar.png"},
	{"1.5", "4", "premolar.png"},
	{"1.4", "5", "premolar.png"},
	{"1.3", "6", "canine.png"},
	{"1.2", "7", "incisor_smaller.png"},
	{"1.1", "8", "incisor.png"},
	{"2.1", "9", "incisor.png"},
	{"2.2", "10", "incisor_smaller.png"},
	{"2.3", "11", "canine.png"},
	{"2.4", "12", "premolar.png"},
	{"2.5", "13", "premolar.png"},
	{"2.6", "14", "molar.png"},
	{"2.7", "15", "molar.png"},
	{"2.8", "16", "molar.png"},
	{"4.8", "32", "molar.png"},
	{"4.7", "31", "molar.png"},
	{"4.6", "30", "molar.png"},
	{"4.5", "29", "premolar.png"},
	{"4.4", "28", "premolar.png"},
	{"4.3", "27", "canine.png"},
	{"4.2", "26", "incisor_smaller.png"},
	{"4.1", "25", "incisor.png"},
	{"3.1", "24", "incisor.png"},
	{"3.2", "23", "incisor_smaller.png"},
	{"3.3", "22", "canine.png"},
	{"3.4", "21", "premolar.png"},
	{"3.5", "20", "premolar.png"},
	{"3.6", "19", "molar.png"},
	{"3.7", "18", "molar.png"},
	{"3.8", "17", "molar.png"},
}

// NotationChart returns the 32 chart positions labeled in the requested
// numbering system, in chart display order.
func NotationChart(n Notation) []ToothNotation {
	labels := make([]ToothNotation, len(notationChart))
	for i, tooth := range notationChart {
		label := tooth.labelFDI
		if n == NotationUNS {
			label = tooth.labelUNS
		}
		labels[i] = ToothNotation{Label: label, Image: tooth.image}
	}
	return labels
}
