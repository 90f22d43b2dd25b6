package domain

import "fmt"

type MainType struct {
	ID       int
	Name     string
	Icon     string
	SubTypes []SubType
}

type SubType struct {
	ID     int
	Name   string
	MainID int
}

type FinalType struct {
	ID    int
	Name  string
	SubID int
}

// CategoryPath - проверенная цепочка main → sub → final.
type CategoryPath struct {
	Main  MainType
	Sub   SubType
	Final FinalType
}

// ResolveCategoryPath проверяет, что final ссылается на sub, а sub на main.
func ResolveCategoryPath(mainTypes []MainType, finalTypes []FinalType, mainID, subID, finalID int) (*CategoryPath, error) {
	var main *MainType
	for i := range mainTypes {
		if mainTypes[i].ID == mainID {
			main = &mainTypes[i]
			break
		}
	}
	if main == nil {
		return nil, fmt.Errorf("%w: unknown main type %d", ErrInvalidCategoryPath, mainID)
	}

	var sub *SubType
	for i := range main.SubTypes {
		if main.SubTypes[i].ID == subID {
			sub = &main.SubTypes[i]
			break
		}
	}
	if sub == nil || (sub.MainID != 0 && sub.MainID != mainID) {
		return nil, fmt.Errorf("%w: sub type %d does not belong to main type %d", ErrInvalidCategoryPath, subID, mainID)
	}

	for _, ft := range finalTypes {
		if ft.ID == finalID {
			if ft.SubID != subID {
				return nil, fmt.Errorf("%w: final type %d does not belong to sub type %d", ErrInvalidCategoryPath, finalID, subID)
			}
			return &CategoryPath{Main: *main, Sub: *sub, Final: ft}, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown final type %d", ErrInvalidCategoryPath, finalID)
}
