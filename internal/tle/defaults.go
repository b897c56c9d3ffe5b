package tle

// Built-in element sets used when no file or URL is configured.
const (
	// IntelsatTLE is a geostationary satellite sampled by the azel tool.
	IntelsatTLE = `INTELSAT 10-02          
1 28358U 04022A   24306.13806737  .00000008  00000+0  00000+0 0  9990
2 28358   0.0040 271.5751 0000423 334.5736 203.5135  1.00271606 74687`

	// ISSTLE is the low-earth-orbit satellite used by the passfinder tool.
	ISSTLE = `ISS (ZARYA)
1 25544U 98067A   25097.52056586  .00011719  00000-0  21806-3 0  9999
2 25544  51.6365 297.0255 0004979  19.0825 341.0349 15.49320680504205`
)
