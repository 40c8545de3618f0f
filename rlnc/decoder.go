package rlnc

import "github.com/TheusHen/rlnc/rlnc/galois"

// pivotRow is one stored row of the decode matrix: a coefficient vector
// normalized to 1 at its pivot column plus the matching data buffer.
type pivotRow struct {
	coeffs []byte
	data   []byte
}

// Decoder is an incremental Gaussian-elimination solver. It ingests
// coded pieces one at a time, keeps its matrix in reduced row echelon
// form, and reconstructs the payload once it has absorbed k linearly
// independent pieces. Rows are held in a fixed array indexed directly by
// pivot column, so reduction touches each stored row at most once.
//
// A Decoder is not safe for concurrent Decode calls; callers feeding a
// decoder from several goroutines must serialize access.
type Decoder struct {
	rows         []*pivotRow
	pieceCount   int
	pieceByteLen int
	rank         int
	pad          bool
}

// NewDecoder returns a decoder expecting coded pieces of pieceByteLen
// data bytes combined from pieceCount originals that were split with the
// padding trailer.
func NewDecoder(pieceByteLen, pieceCount int) (*Decoder, error) {
	return newDecoder(pieceByteLen, pieceCount, true)
}

// NewDecoderWithoutPadding is NewDecoder for payloads that were split
// without a trailer.
func NewDecoderWithoutPadding(pieceByteLen, pieceCount int) (*Decoder, error) {
	return newDecoder(pieceByteLen, pieceCount, false)
}

func newDecoder(pieceByteLen, pieceCount int, pad bool) (*Decoder, error) {
	if pieceCount < 1 || pieceByteLen < 1 {
		return nil, ErrInvalidPieceLength
	}
	return &Decoder{
		rows:         make([]*pivotRow, pieceCount),
		pieceCount:   pieceCount,
		pieceByteLen: pieceByteLen,
		pad:          pad,
	}, nil
}

// PieceCount returns k.
func (d *Decoder) PieceCount() int { return d.pieceCount }

// PieceByteLen returns L.
func (d *Decoder) PieceByteLen() int { return d.pieceByteLen }

// CodedPieceLen returns the expected wire length of one coded piece.
func (d *Decoder) CodedPieceLen() int { return d.pieceCount + d.pieceByteLen }

// IsDecoded reports whether rank has reached k. Once true the decoder
// is terminal: further Decode calls return ErrAllPiecesReceived.
func (d *Decoder) IsDecoded() bool { return d.rank == d.pieceCount }

// UsefulPieceCount returns the current rank.
func (d *Decoder) UsefulPieceCount() int { return d.rank }

// RemainingPieceCount returns how many more independent pieces are
// needed.
func (d *Decoder) RemainingPieceCount() int { return d.pieceCount - d.rank }

// Decode absorbs one coded piece. It returns nil when the piece raised
// the rank, ErrPieceNotUseful when the piece was linearly dependent on
// what is already held (state unchanged), ErrInvalidPieceLength when the
// piece is not k + L bytes, and ErrAllPiecesReceived once decoding has
// completed.
func (d *Decoder) Decode(piece CodedPiece) error {
	if d.IsDecoded() {
		return ErrAllPiecesReceived
	}
	if len(piece) != d.CodedPieceLen() {
		return ErrInvalidPieceLength
	}

	coeffs := make([]byte, d.pieceCount)
	copy(coeffs, piece.Coefficients(d.pieceCount))
	data := make([]byte, d.pieceByteLen)
	copy(data, piece.Data(d.pieceCount))

	// Forward-reduce against every stored pivot. Stored rows are
	// normalized to 1 at their pivot column, so eliminating column p
	// costs one axpy with scalar coeffs[p].
	for p, row := range d.rows {
		if row == nil || coeffs[p] == 0 {
			continue
		}
		c := coeffs[p]
		galois.MulAdd(coeffs, row.coeffs, c)
		galois.MulAdd(data, row.data, c)
	}

	// Find the new pivot; none left means the piece carried no rank.
	pivot := -1
	for p, c := range coeffs {
		if c != 0 {
			pivot = p
			break
		}
	}
	if pivot == -1 {
		return ErrPieceNotUseful
	}

	// Normalize so the pivot entry is 1.
	if c := coeffs[pivot]; c != 1 {
		inv := galois.Inv(c)
		galois.Scale(coeffs, inv)
		galois.Scale(data, inv)
	}

	// Back-substitute into the rows already stored, restoring RREF.
	for _, row := range d.rows {
		if row == nil || row.coeffs[pivot] == 0 {
			continue
		}
		c := row.coeffs[pivot]
		galois.MulAdd(row.coeffs, coeffs, c)
		galois.MulAdd(row.data, data, c)
	}

	d.rows[pivot] = &pivotRow{coeffs: coeffs, data: data}
	d.rank++
	return nil
}

// DecodedData returns the reconstructed payload. It fails with
// ErrNotDecodedYet before rank reaches k, and with ErrInvalidDecodedData
// when the recovered padding trailer is out of range.
func (d *Decoder) DecodedData() ([]byte, error) {
	if !d.IsDecoded() {
		return nil, ErrNotDecodedYet
	}
	// At full rank the matrix is the identity: row i's data buffer is
	// original piece i exactly.
	pieces := make([][]byte, d.pieceCount)
	for i, row := range d.rows {
		pieces[i] = row.data
	}
	return Join(pieces, d.pad)
}
