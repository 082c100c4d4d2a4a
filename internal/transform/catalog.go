package transform

// DefaultCatalog returns the standard decode catalog. The table is built
// once at process start and injected into the engine; nothing in the core
// reaches back into this package at search time.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Base64(),
		Base64URL(),
		Base32(),
		Base32Hex(),
		Hex(),
		Binary(),
		Decimal(),
		URL(),
		HTMLEntities(),
		QuotedPrintable(),
		Rot13(),
		Rot5(),
		Rot18(),
		Rot47(),
		Caesar(),
		Atbash(),
		A1Z26(),
		Morse(),
		Reverse(),
		XORBrute(),
	)
	if err != nil {
		// The default set is static; a registration failure is a bug.
		panic(err)
	}
	return c
}
