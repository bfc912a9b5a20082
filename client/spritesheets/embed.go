package spritesheets

import _ "embed"

// FantasyHexTilesName is the file name the embedded sheet is reported under.
const FantasyHexTilesName = "fantasyhextiles_v2.png"

//go:embed tiles/fantasyhextiles_v2.png
var FantasyHexTiles []byte

//go:embed tiles/fantasyhextiles_v2.json
var FantasyHexTilesManifest []byte
