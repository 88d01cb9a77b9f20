package countof

// Counts of the built-in units.
type (
	ByteCount  = Count[Byte]
	CharCount  = Count[Char]
	WCharCount = Count[WChar]
	PageCount  = Count[Page]
	KbCount    = Count[Kb]
	MbCount    = Count[Mb]
	GbCount    = Count[Gb]
	TbCount    = Count[Tb]
)

func Bytes(n uint64) ByteCount   { return ByteCount{n: n} }
func Chars(n uint64) CharCount   { return CharCount{n: n} }
func WChars(n uint64) WCharCount { return WCharCount{n: n} }
func Pages(n uint64) PageCount   { return PageCount{n: n} }
func KBs(n uint64) KbCount       { return KbCount{n: n} }
func MBs(n uint64) MbCount       { return MbCount{n: n} }
func GBs(n uint64) GbCount       { return GbCount{n: n} }
func TBs(n uint64) TbCount       { return TbCount{n: n} }
