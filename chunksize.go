package main

import "strconv"

const (
	K = 1024
	M = 1024 * 1024
	G = 1024 * 1024 * 1024
)

// ChunkSize is a byte amount with an optional K/M/G suffix in its
// textual form. It is used for read buffer and benchmark sizes.
type ChunkSize int64

func (c *ChunkSize) MarshalText() (text []byte, err error) { // nolint: unparam
	return []byte(c.String()), nil
}

func (c *ChunkSize) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}

func (c *ChunkSize) Set(value string) error {
	if value == "" {
		return strconv.ErrSyntax
	}
	multiplier := int64(1)
	switch value[len(value)-1] {
	case 'K':
		multiplier = K
		value = value[:len(value)-1]
	case 'M':
		multiplier = M
		value = value[:len(value)-1]
	case 'G':
		multiplier = G
		value = value[:len(value)-1]
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	*c = ChunkSize(i * multiplier)
	return nil
}

func (c *ChunkSize) String() string {
	i := int64(*c)
	if i == 0 {
		return "0"
	}
	var postfix string
	switch {
	case i%G == 0:
		i /= G
		postfix = "G"
	case i%M == 0:
		i /= M
		postfix = "M"
	case i%K == 0:
		i /= K
		postfix = "K"
	}
	return strconv.FormatInt(i, 10) + postfix
}
