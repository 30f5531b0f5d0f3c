package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source 骰子来源接口，测试时可注入固定序列
type Source interface {
	Roll(sides int) int
}

// Roller 基于 math/rand 的默认骰子
type Roller struct {
	rng *rand.Rand
}

// NewRoller 用指定种子创建骰子（测试用固定种子）
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeRoller 用当前时间作为种子创建骰子
func NewTimeRoller() *Roller {
	return NewRoller(time.Now().UnixNano())
}

// Roll 投一个 sides 面骰，结果在 [1, sides]
func (r *Roller) Roll(sides int) int {
	return r.rng.Intn(sides) + 1
}

// Sequence 固定结果序列，用于测试中强制指定投掷结果。
// 序列耗尽后继续调用会 panic，便于发现测试脚本与实现不匹配。
type Sequence struct {
	rolls []int
	pos   int
}

// NewSequence 创建固定序列骰子
func NewSequence(rolls ...int) *Sequence {
	return &Sequence{rolls: rolls}
}

func (s *Sequence) Roll(sides int) int {
	if s.pos >= len(s.rolls) {
		panic(fmt.Sprintf("dice: sequence exhausted after %d rolls", len(s.rolls)))
	}
	v := s.rolls[s.pos]
	s.pos++
	if v < 1 || v > sides {
		panic(fmt.Sprintf("dice: scripted roll %d out of range for d%d", v, sides))
	}
	return v
}

// Remaining 返回序列中尚未消耗的投掷数
func (s *Sequence) Remaining() int {
	return len(s.rolls) - s.pos
}

// D4 投一个 d4
func D4(src Source) int { return src.Roll(4) }

// D6 投一个 d6
func D6(src Source) int { return src.Roll(6) }

// D8 投一个 d8
func D8(src Source) int { return src.Roll(8) }

// D20 投一个 d20
func D20(src Source) int { return src.Roll(20) }

// D100 投一个 d100
func D100(src Source) int { return src.Roll(100) }

// D66 投两个 d6，十位+个位组合，结果在 [11, 66]
func D66(src Source) int {
	return src.Roll(6)*10 + src.Roll(6)
}

// Sum 投 count 个 sides 面骰并求和
func Sum(src Source, count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += src.Roll(sides)
	}
	return total
}

// Sum2D6 投 2d6 求和
func Sum2D6(src Source) int { return Sum(src, 2, 6) }

// Sum3D6 投 3d6 求和
func Sum3D6(src Source) int { return Sum(src, 3, 6) }

// AbilityScore 4d6 去最低，用于属性生成
func AbilityScore(src Source) int {
	lowest := 7
	total := 0
	for i := 0; i < 4; i++ {
		v := src.Roll(6)
		total += v
		if v < lowest {
			lowest = v
		}
	}
	return total - lowest
}

// notationPattern 匹配 "2d6"、"d8+1"、"1d4-1" 等骰子表达式
var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Notation 解析后的骰子表达式 NdM+K
type Notation struct {
	Count    int `json:"count"`
	Sides    int `json:"sides"`
	Modifier int `json:"modifier"`
}

// ParseNotation 解析骰子表达式，格式非法时返回错误
func ParseNotation(expr string) (Notation, error) {
	m := notationPattern.FindStringSubmatch(strings.TrimSpace(strings.ToLower(expr)))
	if m == nil {
		return Notation{}, fmt.Errorf("无法解析骰子表达式: %q", expr)
	}

	count := 1
	if m[1] != "" {
		var err error
		count, err = strconv.Atoi(m[1])
		if err != nil || count < 1 {
			return Notation{}, fmt.Errorf("无法解析骰子表达式: %q", expr)
		}
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 1 {
		return Notation{}, fmt.Errorf("无法解析骰子表达式: %q", expr)
	}

	modifier := 0
	if m[3] != "" {
		modifier, _ = strconv.Atoi(m[3])
	}

	return Notation{Count: count, Sides: sides, Modifier: modifier}, nil
}

// Roll 按表达式投掷，结果不低于 1
func (n Notation) Roll(src Source) int {
	total := Sum(src, n.Count, n.Sides) + n.Modifier
	if total < 1 {
		return 1
	}
	return total
}

func (n Notation) String() string {
	s := fmt.Sprintf("%dd%d", n.Count, n.Sides)
	if n.Modifier > 0 {
		s += fmt.Sprintf("+%d", n.Modifier)
	} else if n.Modifier < 0 {
		s += strconv.Itoa(n.Modifier)
	}
	return s
}

// Lookup 按投掷结果查表。roll 不在表的定义域内属于程序错误，
// 直接 panic 而不是静默截断。
func Lookup[T any](name string, table map[int]T, roll int) T {
	v, ok := table[roll]
	if !ok {
		panic(fmt.Sprintf("dice: roll %d out of range for table %s", roll, name))
	}
	return v
}
