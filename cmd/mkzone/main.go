// mkzone заздалегідь генерує пласку зону для тестового сервера:
// чанки в region/ і level.dat з точкою спавну.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tnze/go-mc/nbt"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"

	"PokeCore/world"
)

var (
	dir     = flag.String("dir", "world", "Level directory")
	radius  = flag.Int("radius", 4, "Zone radius in chunks around (0, 0)")
	surface = flag.Int("surface", 64, "Grass level")
)

func main() {
	flag.Parse()

	regionDir := filepath.Join(*dir, "region")
	if err := os.MkdirAll(regionDir, 0755); err != nil {
		panic(err)
	}

	gen := world.FlatGenerator{Surface: int32(*surface)}
	regions := make(map[[2]int]*region.Region)
	defer func() {
		for _, r := range regions {
			if err := r.Close(); err != nil {
				panic(err)
			}
		}
	}()

	for x := -*radius; x <= *radius; x++ {
		for z := -*radius; z <= *radius; z++ {
			pos := [2]int32{int32(x), int32(z)}
			data, err := world.EncodeChunk(pos, gen.Generate(pos))
			if err != nil {
				panic(err)
			}
			rx, rz := region.At(x, z)
			r, ok := regions[[2]int{rx, rz}]
			if !ok {
				r, err = openRegion(filepath.Join(regionDir, fmt.Sprintf("r.%d.%d.mca", rx, rz)))
				if err != nil {
					panic(err)
				}
				regions[[2]int{rx, rz}] = r
			}
			cx, cz := region.In(x, z)
			if err := r.WriteSector(cx, cz, data); err != nil {
				panic(err)
			}
		}
	}

	if err := writeLevel(filepath.Join(*dir, "level.dat"), int32(*surface)); err != nil {
		panic(err)
	}
}

// openRegion перезаписує старий файл регіону
func openRegion(path string) (*region.Region, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return region.Create(path)
}

func writeLevel(path string, surface int32) error {
	level := &save.Level{
		Data: save.LevelData{
			LevelName:      filepath.Base(*dir),
			GameType:       1,
			LastPlayed:     time.Now().UnixMilli(),
			SpawnX:         8,
			SpawnY:         surface + 1,
			SpawnZ:         8,
			GameRules:      make(map[string]string),
			DataVersion:    3337,
			Initialized:    true,
			StorageVersion: 19133,
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if err := nbt.NewEncoder(gw).Encode(level, ""); err != nil {
		return err
	}
	return gw.Close()
}
