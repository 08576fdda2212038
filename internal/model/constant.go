package model

import (
	"math"
	"strconv"
)

// Value parses the constant's literal into the Go representation of its
// type: int8, int16, int32, int64, uint8, float32, float64 or bool.
func (c *Constant) Value() (any, error) {
	if !c.Type.LegalConst() {
		return nil, ShapeErrorf(c.Name, `type "%s" is not allowed for constants`, c.Type)
	}

	if c.FixedPoint {
		return c.reinterpret()
	}

	bitSize := c.Type.Size() * 8

	switch c.Type {
	case Int8, Int16, Int32, Int64:
		v, err := strconv.ParseInt(c.Literal, 0, bitSize)
		if err != nil {
			return nil, c.literalError(err)
		}

		return signed(c.Type, v), nil
	case Byte:
		v, err := strconv.ParseUint(c.Literal, 0, 8)
		if err != nil {
			return nil, c.literalError(err)
		}

		return uint8(v), nil
	case Float32:
		v, err := strconv.ParseFloat(c.Literal, 32)
		if err != nil {
			return nil, c.literalError(err)
		}

		return float32(v), nil
	case Float64:
		v, err := strconv.ParseFloat(c.Literal, 64)
		if err != nil {
			return nil, c.literalError(err)
		}

		return v, nil
	case Boolean:
		v, err := strconv.ParseBool(c.Literal)
		if err != nil {
			return nil, c.literalError(err)
		}

		return v, nil
	}

	return nil, ShapeErrorf(c.Name, `type "%s" is not allowed for constants`, c.Type)
}

// Bits parses a fixed point literal as the raw bit pattern of the constant.
func (c *Constant) Bits() (uint64, error) {
	bits, err := strconv.ParseUint(c.Literal, 0, c.Type.Size()*8)
	if err != nil {
		return 0, c.literalError(err)
	}

	return bits, nil
}

func (c *Constant) reinterpret() (any, error) {
	if c.Type == Boolean {
		return nil, ShapeErrorf(c.Name, `boolean constants can't be fixed point`)
	}

	bits, err := c.Bits()
	if err != nil {
		return nil, err
	}

	switch c.Type {
	case Float32:
		return math.Float32frombits(uint32(bits)), nil
	case Float64:
		return math.Float64frombits(bits), nil
	case Byte:
		return uint8(bits), nil
	}

	return signed(c.Type, int64(bits)), nil
}

func (c *Constant) literalError(err error) *ShapeError {
	return ShapeErrorf(c.Name, `invalid %s literal "%s": %s`, c.Type, c.Literal, err.Error())
}

func signed(t PrimitiveType, v int64) any {
	switch t {
	case Int8:
		return int8(v)
	case Int16:
		return int16(v)
	case Int32:
		return int32(v)
	}

	return v
}
