package options

import "strconv"

// Translate renders a set as command-line tokens in catalog order.
//
//	bool present   --name
//	string / int   --name value
//	strings        --name v1 --name v2 ...
//
// Absent options emit nothing. The result depends only on the set and the
// catalog order, so translating the same set twice gives identical tokens.
func Translate(s *Set) []string {
	var args []string
	for _, name := range s.Names() {
		spec, _ := s.catalog.Lookup(name)
		v := s.Get(name)
		flag := "--" + spec.Flag()
		switch spec.Kind {
		case KindBool:
			args = append(args, flag)
		case KindString:
			args = append(args, flag, v.str)
		case KindInt:
			args = append(args, flag, strconv.Itoa(v.num))
		case KindStrings:
			for _, item := range v.list {
				args = append(args, flag, item)
			}
		}
	}
	return args
}
